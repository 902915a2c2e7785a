package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// resolveUser maps a principal onto its local profile.
func resolveUser(ctx context.Context, users repository.UserRepository, logger zerolog.Logger, principalID string) (*model.User, error) {
	if strings.TrimSpace(principalID) == "" {
		return nil, model.ErrNotAuthenticated
	}

	user, err := users.GetByExternalID(ctx, principalID)
	if err != nil {
		logger.Error().Err(err).Str("principal", principalID).Msg("failed to resolve user")
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		logger.Debug().Str("principal", principalID).Msg("user not found")
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// failAs keeps domain errors and replaces anything else with fallback.
func failAs(err error, fallback *model.DomainError) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fallback
}

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// GetDefaultAddress returns the principal's stored delivery address.
func (s *userService) GetDefaultAddress(ctx context.Context, principalID string) (string, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return "", err
	}
	return user.Address, nil
}

// SetDefaultAddress stores the principal's delivery address.
func (s *userService) SetDefaultAddress(ctx context.Context, principalID, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return model.ErrAddressRequired
	}

	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateAddress(ctx, user.ID, address); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update address")
		return err
	}
	return nil
}

// SyncIdentity creates or refreshes the local profile from an identity event.
// Event types other than user creation and update are ignored.
func (s *userService) SyncIdentity(ctx context.Context, event model.IdentityEvent) error {
	if event.Type != model.IdentityUserCreated && event.Type != model.IdentityUserUpdated {
		s.logger.Debug().Str("event_type", string(event.Type)).Msg("ignoring identity event")
		return nil
	}
	if strings.TrimSpace(event.ExternalID) == "" {
		return model.InvalidInput("Identity event has no user id")
	}

	user := &model.User{
		ExternalID: event.ExternalID,
		Email:      strings.TrimSpace(event.Email),
		FullName:   strings.TrimSpace(strings.TrimSpace(event.FirstName) + " " + strings.TrimSpace(event.LastName)),
		AvatarURL:  event.AvatarURL,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("external_id", event.ExternalID).Msg("failed to sync identity")
		return err
	}

	s.logger.Info().
		Str("event_type", string(event.Type)).
		Str("user_id", user.ID.String()).
		Msg("identity synchronised")
	return nil
}
