package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByCategory retrieves the products of one category.
	GetByCategory(ctx context.Context, category string) ([]model.Product, error)

	// Create uploads the images and inserts a new product.
	Create(ctx context.Context, input model.ProductInput, images []model.ImageUpload) (*model.Product, error)
}

// OrderService converts carts into orders and drives the order lifecycle.
// Every customer operation takes the caller's principal explicitly.
type OrderService interface {
	// PlaceOrder validates the cart against live stock, prices it and commits
	// the order, its items, the stock decrements and the cart clear atomically.
	PlaceOrder(ctx context.Context, principalID string, req model.PlaceOrderRequest) (*model.OrderConfirmation, error)

	// CancelOrder cancels a pending order owned by the principal and restores stock.
	CancelOrder(ctx context.Context, principalID string, orderID uuid.UUID) error

	// MarkOrderDelivered moves a pending order to completed.
	MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error

	// GetOrder retrieves one of the principal's orders.
	GetOrder(ctx context.Context, principalID string, orderID uuid.UUID) (*model.OrderDetails, error)

	// ListOrders retrieves the principal's orders, newest first.
	ListOrders(ctx context.Context, principalID string) ([]model.OrderDetails, error)

	// ListAllOrders retrieves every order that is not canceled.
	ListAllOrders(ctx context.Context) ([]model.OrderDetails, error)
}

// CartService defines operations on the principal's cart.
type CartService interface {
	AddToCart(ctx context.Context, principalID string, req model.AddToCartRequest) error
	GetCart(ctx context.Context, principalID string) (*model.CartView, error)
	UpdateQuantity(ctx context.Context, principalID string, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, principalID string, itemID uuid.UUID) error
}

// UserService defines operations on user profiles.
type UserService interface {
	GetDefaultAddress(ctx context.Context, principalID string) (string, error)
	SetDefaultAddress(ctx context.Context, principalID, address string) error

	// SyncIdentity applies an identity-provider user event to the local profile.
	SyncIdentity(ctx context.Context, event model.IdentityEvent) error
}

// WishlistService defines operations on the principal's wishlist.
type WishlistService interface {
	Add(ctx context.Context, principalID string, productID uuid.UUID) error
	Remove(ctx context.Context, principalID string, productID uuid.UUID) error
	List(ctx context.Context, principalID string) ([]model.Product, error)
}

// Notifier delivers order notifications. Implementations must not block the caller.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, n model.OrderNotification)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyOrderPlaced(context.Context, model.OrderNotification) {}
