package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentUploads bounds parallel image uploads per product.
const maxConcurrentUploads = 4

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      storage.ImageStore
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images storage.ImageStore, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetByCategory retrieves the products of one category.
func (s *productService) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	c, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetByCategory(ctx, c)
	if err != nil {
		s.logger.Error().Err(err).Str("category", string(c)).Msg("failed to get products by category")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// Create validates the input, uploads the images concurrently and inserts the
// product. Image URLs keep the order the images were given in.
func (s *productService) Create(ctx context.Context, input model.ProductInput, images []model.ImageUpload) (*model.Product, error) {
	product, err := validateProductInput(input)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for i, img := range images {
		g.Go(func() error {
			url, err := s.images.Upload(gctx, img.FileName, img.ContentType, img.Data)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", img.FileName, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to upload product images")
		return nil, err
	}
	product.Images = urls

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("category", string(product.Category)).
		Int("images", len(urls)).
		Msg("product created")

	return product, nil
}

func validateProductInput(input model.ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.InvalidInput("Product name is required")
	}
	if input.Price.IsNegative() {
		return nil, model.InvalidInput("Price must not be negative")
	}
	if input.Stock < 0 {
		return nil, model.InvalidInput("Stock must not be negative")
	}

	category, err := model.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	sizes := make([]string, 0, len(input.Sizes))
	seen := make(map[string]bool, len(input.Sizes))
	for _, raw := range input.Sizes {
		size := strings.TrimSpace(raw)
		if size == "" || seen[size] {
			continue
		}
		seen[size] = true
		sizes = append(sizes, size)
	}

	return &model.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price.Round(2),
		Category:    category,
		Stock:       input.Stock,
		Sizes:       sizes,
	}, nil
}
