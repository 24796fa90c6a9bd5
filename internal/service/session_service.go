package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pc-park/internal/builder"
	"pc-park/internal/cart"
	"pc-park/internal/catalog"
	"pc-park/internal/checkout"
	"pc-park/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultSessionIdleTimeout is how long an unused session stays in memory.
	DefaultSessionIdleTimeout = 30 * time.Minute

	loadTimeout = 5 * time.Second
)

// Session bundles the per-shopper stores. Each session persists under its
// own storage namespace.
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Checkout
	Builder  *builder.Builder
}

// SessionService resolves a session id to its live stores, rehydrating the
// cart from storage the first time the id is seen.
type SessionService interface {
	Get(ctx context.Context, id string) (*Session, error)
	Len() int
}

// SessionOption configures a SessionService.
type SessionOption func(*sessionService)

// WithIdleTimeout sets how long a session may go unused before it is
// dropped from memory. Its cart reloads from storage on the next request.
func WithIdleTimeout(d time.Duration) SessionOption {
	return func(s *sessionService) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithSessionClock replaces time.Now.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *sessionService) { s.now = now }
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

type sessionService struct {
	catalog *catalog.Catalog
	kv      storage.KV
	logger  *zap.Logger

	idleTimeout time.Duration
	now         func() time.Time

	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	lastSweep time.Time
	loads     singleflight.Group
}

// NewSessionService creates a new instance of SessionService
func NewSessionService(cat *catalog.Catalog, kv storage.KV, logger *zap.Logger, opts ...SessionOption) SessionService {
	s := &sessionService{
		catalog:     cat,
		kv:          kv,
		logger:      logger,
		idleTimeout: DefaultSessionIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

// Get returns the live session for id. Concurrent first requests for the
// same id share a single rehydration, which is detached from the first
// caller's cancellation. A failed rehydration is not cached.
func (s *sessionService) Get(ctx context.Context, id string) (*Session, error) {
	if sess, ok := s.touch(id); ok {
		return sess, nil
	}

	val, err, _ := s.loads.Do(id, func() (any, error) {
		if sess, ok := s.touch(id); ok {
			return sess, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		loaded, err := s.load(loadCtx, id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.sessions[id] = &sessionEntry{session: loaded, lastSeen: s.now()}
		s.mu.Unlock()

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return val.(*Session), nil
}

func (s *sessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// touch returns a live session and marks it used. It also evicts idle
// sessions, at most once per idle timeout.
func (s *sessionService) touch(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTimeout {
		s.sweep(now)
	}

	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = now
	return entry.session, true
}

func (s *sessionService) sweep(now time.Time) {
	evicted := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) >= s.idleTimeout {
			delete(s.sessions, id)
			evicted++
		}
	}
	s.lastSweep = now

	if evicted > 0 {
		s.logger.Debug("Evicted idle sessions", zap.Int("evicted", evicted), zap.Int("live", len(s.sessions)))
	}
}

func (s *sessionService) load(ctx context.Context, id string) (*Session, error) {
	kv := storage.Scoped(s.kv, id)
	logger := s.logger.With(zap.String("session", id))

	store, err := cart.Load(ctx, kv, logger)
	if err != nil {
		logger.Warn("Cart rehydration failed", zap.Error(err))
		return nil, err
	}

	co, err := checkout.New(store, kv, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout: %w", err)
	}

	logger.Debug("Session loaded", zap.Int("cart_items", store.Count()))

	return &Session{
		ID:       id,
		Cart:     store,
		Checkout: co,
		Builder:  builder.New(s.catalog, kv, logger),
	}, nil
}
