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

type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	var w model.Wishlist
	err := r.pool.QueryRow(ctx, `SELECT id, user_id FROM wishlists WHERE user_id = $1`, userID).
		Scan(&w.ID, &w.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	return &w, nil
}

func (r *wishlistRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	var w model.Wishlist
	err := r.pool.QueryRow(ctx,
		`INSERT INTO wishlists (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id`, userID,
	).Scan(&w.ID, &w.UserID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create wishlist")
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}
	return &w, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (wishlist_id, product_id) VALUES ($1, $2)
		 ON CONFLICT (wishlist_id, product_id) DO NOTHING`, wishlistID, productID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("wishlist_id", wishlistID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add wishlist item")
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, wishlistID, productID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`, wishlistID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlistID.String()).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

func (r *wishlistRepository) ListProducts(ctx context.Context, wishlistID uuid.UUID) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.wishlist_id = $1
		ORDER BY wi.created_at DESC, wi.id
	`

	rows, err := r.pool.Query(ctx, query, wishlistID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlistID.String()).Msg("failed to query wishlist items")
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(productFields(&p)...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist product row")
			return nil, fmt.Errorf("failed to scan wishlist product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist products: %w", err)
	}
	return products, nil
}
