package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const principalID = "user_2abc"

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, principalID string, req model.PlaceOrderRequest) (*model.OrderConfirmation, error) {
	args := m.Called(ctx, principalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderConfirmation), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, principalID string, orderID uuid.UUID) error {
	return m.Called(ctx, principalID, orderID).Error(0)
}

func (m *MockOrderService) MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockOrderService) GetOrder(ctx context.Context, principalID string, orderID uuid.UUID) (*model.OrderDetails, error) {
	args := m.Called(ctx, principalID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetails), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, principalID string) ([]model.OrderDetails, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetails), args.Error(1)
}

func (m *MockOrderService) ListAllOrders(ctx context.Context) ([]model.OrderDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetails), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input model.ProductInput, images []model.ImageUpload) (*model.Product, error) {
	args := m.Called(ctx, input, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddToCart(ctx context.Context, principalID string, req model.AddToCartRequest) error {
	return m.Called(ctx, principalID, req).Error(0)
}

func (m *MockCartService) GetCart(ctx context.Context, principalID string) (*model.CartView, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, principalID string, itemID uuid.UUID, quantity int) error {
	return m.Called(ctx, principalID, itemID, quantity).Error(0)
}

func (m *MockCartService) RemoveItem(ctx context.Context, principalID string, itemID uuid.UUID) error {
	return m.Called(ctx, principalID, itemID).Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetDefaultAddress(ctx context.Context, principalID string) (string, error) {
	args := m.Called(ctx, principalID)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) SetDefaultAddress(ctx context.Context, principalID, address string) error {
	return m.Called(ctx, principalID, address).Error(0)
}

func (m *MockUserService) SyncIdentity(ctx context.Context, event model.IdentityEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockWishlistService is a mock implementation of WishlistService.
type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) Add(ctx context.Context, principalID string, productID uuid.UUID) error {
	return m.Called(ctx, principalID, productID).Error(0)
}

func (m *MockWishlistService) Remove(ctx context.Context, principalID string, productID uuid.UUID) error {
	return m.Called(ctx, principalID, productID).Error(0)
}

func (m *MockWishlistService) List(ctx context.Context, principalID string) ([]model.Product, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// authed returns a request carrying the test principal.
func authed(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithPrincipal(req.Context(), principalID))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}
