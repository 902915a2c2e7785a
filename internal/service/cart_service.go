package service

import (
	"context"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService. It checks stock but never reserves it.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func stockError(p *model.Product, requested int) *model.InsufficientStockError {
	return &model.InsufficientStockError{
		ProductID:   p.ID.String(),
		ProductName: p.Name,
		Available:   p.Stock,
		Requested:   requested,
	}
}

// AddToCart adds a product to the principal's cart, merging with an existing line.
func (s *cartService) AddToCart(ctx context.Context, principalID string, req model.AddToCartRequest) error {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return model.ErrInvalidQuantity
	}

	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID.String()).Msg("failed to get product")
		return err
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	var size *string
	if trimmed := strings.TrimSpace(req.Size); trimmed != "" {
		if !product.HasSize(trimmed) {
			return model.InvalidInput("Size " + trimmed + " is not available for " + product.Name)
		}
		size = &trimmed
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return err
	}

	requested := req.Quantity
	existing, err := s.cartRepo.FindItem(ctx, cart.ID, product.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > product.Stock {
		return stockError(product, requested)
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, product.ID, req.Quantity, size); err != nil {
		return err
	}

	s.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", requested).
		Msg("cart item added")
	return nil
}

// GetCart returns the principal's cart with a price preview. A user without a
// cart gets an empty one.
func (s *cartService) GetCart(ctx context.Context, principalID string) (*model.CartView, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &model.Cart{UserID: user.ID, Items: []model.CartItem{}}
	}

	return &model.CartView{Cart: *cart, Totals: CalculateTotals(cart.Items)}, nil
}

// UpdateQuantity sets a cart line's quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, principalID string, itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	item, err := s.ownedItem(ctx, principalID, itemID)
	if err != nil {
		return err
	}
	if quantity > item.Product.Stock {
		return stockError(&item.Product, quantity)
	}

	return s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity)
}

// RemoveItem deletes a cart line.
func (s *cartService) RemoveItem(ctx context.Context, principalID string, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, principalID, itemID)
	if err != nil {
		return err
	}

	removed, err := s.cartRepo.DeleteItem(ctx, item.CartID, item.ID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrCartItemNotFound
	}
	return nil
}

// ownedItem loads a line from the principal's own cart.
func (s *cartService) ownedItem(ctx context.Context, principalID string, itemID uuid.UUID) (*model.CartItem, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, model.ErrCartItemNotFound
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrCartItemNotFound
	}
	return item, nil
}
