package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

func (s *wishlistService) Add(ctx context.Context, principalID string, productID uuid.UUID) error {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	wishlist, err := s.wishlistRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return err
	}

	added, err := s.wishlistRepo.AddItem(ctx, wishlist.ID, productID)
	if err != nil {
		return err
	}
	if !added {
		return model.ErrAlreadyInWishlist
	}
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, principalID string, productID uuid.UUID) error {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return err
	}

	wishlist, err := s.wishlistRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if wishlist == nil {
		return model.ErrWishlistNotFound
	}

	return s.wishlistRepo.RemoveItem(ctx, wishlist.ID, productID)
}

func (s *wishlistService) List(ctx context.Context, principalID string) ([]model.Product, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlistRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return []model.Product{}, nil
	}

	return s.wishlistRepo.ListProducts(ctx, wishlist.ID)
}
