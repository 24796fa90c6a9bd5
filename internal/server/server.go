package server

import (
	"fmt"
	"net/http"
	"time"

	"pc-park/internal/catalog"
	"pc-park/internal/config"
	"pc-park/internal/database"
	custommiddleware "pc-park/internal/middleware"
	"pc-park/internal/service"
	"pc-park/internal/storage"
	"pc-park/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the long-lived resources the server is assembled from. DB and
// Redis are nil when no component needs them.
type Deps struct {
	Catalog *catalog.Catalog
	KV      storage.KV
	DB      database.Service
	Redis   *redis.Client
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	deps   Deps
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		deps:   deps,
	}
	server.Handler = server.routes()

	return server
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(s.logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(s.logger))
	router.Use(custommiddleware.CORSMiddleware(s.config.Server.CORSAllowedOrigins, s.config.Server.Env != "production"))

	router.Get("/health", s.health)

	sessions := service.NewSessionService(s.deps.Catalog, s.deps.KV, s.logger,
		service.WithIdleTimeout(s.config.Storage.SessionIdle))
	cartService := service.NewCartService(sessions, s.deps.Catalog, s.logger)

	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.SessionMiddleware(s.logger))

		if s.deps.Redis != nil && s.config.RateLimit.Enabled() {
			r.Use(custommiddleware.RateLimitMiddleware(s.deps.Redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: s.config.RateLimit.Requests,
				Window:            s.config.RateLimit.Window,
				KeyPrefix:         "rate_limit",
			}, s.logger))
		}

		transport.NewCatalogHandler(s.deps.Catalog, s.config.Catalog.PageSize, s.logger).RegisterRoutes(r)
		transport.NewDealHandler(s.deps.Catalog, s.logger).RegisterRoutes(r)
		transport.NewCartHandler(cartService, s.logger).RegisterRoutes(r)
		transport.NewCheckoutHandler(sessions, s.logger).RegisterRoutes(r)
		transport.NewBuilderHandler(sessions, s.logger).RegisterRoutes(r)
	})

	return router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{
		"status":  "ok",
		"storage": s.config.Storage.Backend,
		"catalog": s.config.Catalog.Source,
	}

	if s.deps.DB != nil {
		dbHealth := s.deps.DB.Health(r.Context())
		body["database"] = dbHealth
		if dbHealth["status"] != "up" {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Ping(r.Context()).Err(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["redis"] = err.Error()
		} else {
			body["redis"] = "up"
		}
	}

	custommiddleware.RespondWithJSON(w, status, body)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.deps.DB != nil {
		if err := s.deps.DB.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
