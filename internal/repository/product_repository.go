package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `p.id, p.name, p.description, p.price, p.images, p.category, p.stock, p.sizes, p.created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// productFields returns scan destinations matching productColumns.
func productFields(p *model.Product) []any {
	return []any{&p.ID, &p.Name, &p.Description, &p.Price, &p.Images, &p.Category, &p.Stock, &p.Sizes, &p.CreatedAt}
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(productFields(&p)...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`
	return r.queryProducts(ctx, query, limit, offset)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(productFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByCategory retrieves all products of one category, newest first.
func (r *productRepository) GetByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.category = $1
		ORDER BY p.created_at DESC, p.id
	`
	return r.queryProducts(ctx, query, string(category))
}

// Create inserts a new product and fills in its generated fields.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Sizes == nil {
		product.Sizes = []string{}
	}

	query := `
		INSERT INTO products (name, description, price, images, category, stock, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Images,
		string(product.Category),
		product.Stock,
		product.Sizes,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")
	return nil
}

// DecrementStock removes quantity units from stock unless that would make it negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// IncrementStock returns quantity units to stock.
func (r *productRepository) IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1`, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to increment stock")
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to increment stock: product %s not found", id)
	}
	return nil
}

// GetStock reads the current stock within the transaction.
func (r *productRepository) GetStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	var stock int
	if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock); err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to read stock")
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return stock, nil
}
