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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByExternalID retrieves a user by identity-provider principal.
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	query := `
		SELECT id, external_id, email, full_name, avatar_url, address, phone, created_at, updated_at
		FROM users
		WHERE external_id = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, externalID).Scan(
		&u.ID,
		&u.ExternalID,
		&u.Email,
		&u.FullName,
		&u.AvatarURL,
		&u.Address,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("external_id", externalID).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("external_id", externalID).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// Upsert creates or refreshes the profile keyed by external ID and fills in
// the stored row. Address and phone are never touched here.
func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (external_id, email, full_name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE
		SET email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
		    full_name = EXCLUDED.full_name,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = NOW()
		RETURNING id, email, address, phone, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.ExternalID, user.Email, user.FullName, user.AvatarURL).Scan(
		&user.ID,
		&user.Email,
		&user.Address,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("external_id", user.ExternalID).Msg("failed to upsert user")
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user synchronised")
	return nil
}

// UpdateDefaults stores the default delivery address and phone.
func (r *userRepository) UpdateDefaults(ctx context.Context, userID uuid.UUID, address, phone string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET address = $2, phone = $3, updated_at = NOW() WHERE id = $1`,
		userID, address, phone)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update user defaults")
		return fmt.Errorf("failed to update user defaults: %w", err)
	}
	return nil
}

// UpdateAddress stores the default delivery address.
func (r *userRepository) UpdateAddress(ctx context.Context, userID uuid.UUID, address string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET address = $2, updated_at = NOW() WHERE id = $1`, userID, address)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update address: user %s not found", userID)
	}
	return nil
}
