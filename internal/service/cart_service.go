package service

import (
	"context"
	"fmt"

	"pc-park/internal/cart"
	"pc-park/internal/catalog"
	"pc-park/internal/domain"

	"go.uber.org/zap"
)

// CartService applies catalog-aware cart operations to a session's cart.
type CartService interface {
	View(ctx context.Context, sessionID string) (cart.State, error)
	AddProduct(ctx context.Context, sessionID, productID string) (cart.State, error)
	AddBundle(ctx context.Context, sessionID, bundleID string) (cart.State, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (cart.State, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (cart.State, error)
	Clear(ctx context.Context, sessionID string) (cart.State, error)
	SetOpen(ctx context.Context, sessionID string, open bool) (cart.State, error)
	DismissConfirmation(ctx context.Context, sessionID string) (cart.State, error)
}

type cartService struct {
	sessions SessionService
	catalog  *catalog.Catalog
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(sessions SessionService, cat *catalog.Catalog, logger *zap.Logger) CartService {
	return &cartService{
		sessions: sessions,
		catalog:  cat,
		logger:   logger,
	}
}

func (s *cartService) View(ctx context.Context, sessionID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	return store.State(), nil
}

// AddProduct adds one unit of a product at its current discounted price
func (s *cartService) AddProduct(ctx context.Context, sessionID, productID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}

	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return store.State(), err
	}

	err = store.AddItem(ctx, domain.CartItemFromProduct(p))
	return store.State(), err
}

// AddBundle adds one unit of every resolved product in a bundle
func (s *cartService) AddBundle(ctx context.Context, sessionID, bundleID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}

	deal, err := s.catalog.Bundle(ctx, bundleID)
	if err != nil {
		return store.State(), err
	}

	items := make([]domain.CartItem, len(deal.Products))
	for i, p := range deal.Products {
		items[i] = domain.CartItemFromProduct(p)
	}

	err = store.AddItems(ctx, items...)
	return store.State(), err
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	err = store.UpdateQuantity(ctx, productID, quantity)
	return store.State(), err
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	err = store.RemoveItem(ctx, productID)
	return store.State(), err
}

func (s *cartService) Clear(ctx context.Context, sessionID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	err = store.Clear(ctx)
	return store.State(), err
}

func (s *cartService) SetOpen(ctx context.Context, sessionID string, open bool) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	store.SetOpen(open)
	return store.State(), nil
}

func (s *cartService) DismissConfirmation(ctx context.Context, sessionID string) (cart.State, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	store.DismissConfirmation()
	return store.State(), nil
}

func (s *cartService) store(ctx context.Context, sessionID string) (*cart.Store, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess.Cart, nil
}
