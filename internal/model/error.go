package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeNotAuthenticated  = "NOT_AUTHENTICATED"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeNotCancelable     = "NOT_CANCELABLE"
	ErrCodeAlreadyFinal      = "ALREADY_FINAL"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCartItemNotFound  = "CART_ITEM_NOT_FOUND"
	ErrCodeAlreadyInWishlist = "ALREADY_IN_WISHLIST"
	ErrCodeWishlistNotFound  = "WISHLIST_NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// InvalidInput builds an INVALID_INPUT error with a caller-facing message.
func InvalidInput(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message)
}

// Common domain errors
var (
	ErrNotAuthenticated  = NewDomainError(ErrCodeNotAuthenticated, "Authentication required")
	ErrUserNotFound      = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrAddressRequired   = InvalidInput("Address is required")
	ErrContactRequired   = InvalidInput("Contact number is required")
	ErrInvalidQuantity   = InvalidInput("Quantity must be greater than zero")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrNotCancelable     = NewDomainError(ErrCodeNotCancelable, "Order not found or cannot be cancelled")
	ErrAlreadyCompleted  = NewDomainError(ErrCodeAlreadyFinal, "Order is already completed")
	ErrAlreadyCanceled   = NewDomainError(ErrCodeAlreadyFinal, "Cannot update a canceled order")
	ErrPlaceOrderFailed  = NewDomainError(ErrCodeTransactionFailed, "Failed to place order. Please try again.")
	ErrCancelOrderFailed = NewDomainError(ErrCodeTransactionFailed, "Failed to cancel order")
	ErrUpdateOrderFailed = NewDomainError(ErrCodeTransactionFailed, "Failed to update order status")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartItemNotFound  = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrAlreadyInWishlist = NewDomainError(ErrCodeAlreadyInWishlist, "Product already in wishlist")
	ErrWishlistNotFound  = NewDomainError(ErrCodeWishlistNotFound, "Wishlist not found")
)

// InsufficientStockError reports a cart line that asks for more units than are in stock.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

// Code returns the API error code.
func (e *InsufficientStockError) Code() string {
	return ErrCodeInsufficientStock
}
