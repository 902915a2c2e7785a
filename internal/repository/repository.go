package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Transactor starts database transactions.
type Transactor interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByCategory retrieves all products of one category, newest first.
	GetByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// Create inserts a new product and fills in its generated fields.
	Create(ctx context.Context, product *model.Product) error

	// DecrementStock removes quantity units from stock within the transaction.
	// It reports false, without changing anything, when fewer units are available.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error)

	// IncrementStock returns quantity units to stock within the transaction.
	IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error

	// GetStock reads the current stock within the transaction.
	GetStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetByUserID retrieves the user's cart with its items and their products.
	// Returns nil when the user has no cart yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetOrCreate returns the user's cart row, creating it on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// FindItem retrieves the cart line for a product. Returns nil when absent.
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error)

	// GetItem retrieves a cart line by ID together with its product. Returns nil when absent.
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartItem, error)

	// UpsertItem adds quantity to the (cart, product) line, creating it if needed.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int, size *string) error

	// UpdateItemQuantity sets the quantity of a cart line.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// DeleteItem removes a cart line. Reports false when nothing was removed.
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)

	// ClearItems deletes every line of the cart within the transaction.
	ClearItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	Transactor

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order row. Returns nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetForUser retrieves an order with its lines when it belongs to the user.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*model.OrderDetails, error)

	// ListByUser retrieves the user's orders with their lines, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetails, error)

	// ListActive retrieves every order that is not canceled, with customer names.
	ListActive(ctx context.Context) ([]model.OrderDetails, error)

	// LockForUpdate reads an order and its items, holding a row lock until the
	// transaction ends. Returns nil when the order does not exist.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// UpdateStatus sets the order status within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error

	// CompleteIfPending moves a PENDING order to COMPLETED. Reports false when the
	// order was not pending.
	CompleteIfPending(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserRepository defines the interface for user profile data access operations.
type UserRepository interface {
	// GetByExternalID retrieves a user by identity-provider principal. Returns nil when absent.
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// Upsert creates or refreshes the profile keyed by external ID. An empty email
	// keeps the stored one.
	Upsert(ctx context.Context, user *model.User) error

	// UpdateDefaults stores the default delivery address and phone.
	UpdateDefaults(ctx context.Context, userID uuid.UUID, address, phone string) error

	// UpdateAddress stores the default delivery address.
	UpdateAddress(ctx context.Context, userID uuid.UUID, address string) error
}

// WishlistRepository defines the interface for wishlist data access operations.
type WishlistRepository interface {
	// GetByUserID retrieves the user's wishlist. Returns nil when absent.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error)

	// GetOrCreate returns the user's wishlist, creating it on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error)

	// AddItem saves a product. Reports false when it was already saved.
	AddItem(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error)

	// RemoveItem deletes a saved product.
	RemoveItem(ctx context.Context, wishlistID, productID uuid.UUID) error

	// ListProducts retrieves the saved products, most recently added first.
	ListProducts(ctx context.Context, wishlistID uuid.UUID) ([]model.Product, error)
}
