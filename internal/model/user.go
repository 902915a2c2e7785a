package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the local profile of an identity-provider principal.
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ExternalID string    `json:"-" db:"external_id"`
	Email      string    `json:"email" db:"email"`
	FullName   string    `json:"fullName" db:"full_name"`
	AvatarURL  string    `json:"avatarUrl" db:"avatar_url"`
	Address    string    `json:"address" db:"address"`
	Phone      string    `json:"phone" db:"phone"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// IdentityEventType names the identity-provider webhook events we act on.
type IdentityEventType string

const (
	IdentityUserCreated IdentityEventType = "user.created"
	IdentityUserUpdated IdentityEventType = "user.updated"
)

// IdentityEvent is the profile data carried by an identity webhook.
type IdentityEvent struct {
	Type       IdentityEventType
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	AvatarURL  string
}

// AddressRequest represents the request payload for setting the default address.
type AddressRequest struct {
	Address string `json:"address"`
}

// Wishlist is a user's saved products.
type Wishlist struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"userId" db:"user_id"`
}

// WishlistRequest represents the request payload for adding to the wishlist.
type WishlistRequest struct {
	ProductID uuid.UUID `json:"productId"`
}
