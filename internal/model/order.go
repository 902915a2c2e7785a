package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// IsFinal reports whether no further transition is allowed.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// Order represents a customer order.
type Order struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"userId" db:"user_id"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
	Location   string          `json:"location" db:"location"`
	ContactNo  string          `json:"contactNo" db:"contact_no"`
	Status     OrderStatus     `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Size      string    `json:"size" db:"size"`
}

// OrderLine is an order item joined with the product it refers to.
type OrderLine struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderDetails is an order with its lines.
type OrderDetails struct {
	Order
	Items []OrderLine `json:"items"`
	// CustomerName is only filled for administrative listings.
	CustomerName string `json:"customerName,omitempty"`
}

// PlaceOrderRequest represents the request payload for checking out the cart.
type PlaceOrderRequest struct {
	Address   string `json:"address"`
	ContactNo string `json:"contactNo"`
}

// OrderConfirmation is returned after a successful checkout.
type OrderConfirmation struct {
	OrderID    uuid.UUID       `json:"orderId"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
}

// OrderNotification is the data an order confirmation message is rendered from.
type OrderNotification struct {
	OrderID      uuid.UUID
	Email        string
	CustomerName string
	Total        decimal.Decimal
	Address      string
	ContactNo    string
}
