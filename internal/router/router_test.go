package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type rejectAll struct{}

func (rejectAll) Verify(string) (string, error) { return "", errors.New("rejected") }

func newTestRouter() http.Handler {
	logger := zerolog.Nop()
	return New(Handlers{
		Product:  handler.NewProductHandler(nil, logger),
		Order:    handler.NewOrderHandler(nil, logger),
		Cart:     handler.NewCartHandler(nil, logger),
		Wishlist: handler.NewWishlistHandler(nil, logger),
		Profile:  handler.NewProfileHandler(nil, logger),
		Webhook:  handler.NewWebhookHandler(nil, nil, nil, logger),
	}, Config{APIKey: "admin-key", AllowedOrigin: "*", Verifier: rejectAll{}}, logger)
}

func TestRouter_Guards(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{name: "Health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Cart requires token", method: http.MethodGet, path: "/api/cart", expectedStatus: http.StatusUnauthorized},
		{name: "Checkout requires token", method: http.MethodPost, path: "/api/orders", expectedStatus: http.StatusUnauthorized},
		{name: "Rejected token", method: http.MethodGet, path: "/api/wishlist", headers: map[string]string{"Authorization": "Bearer x"}, expectedStatus: http.StatusUnauthorized},
		{name: "Admin requires key", method: http.MethodGet, path: "/api/admin/orders", expectedStatus: http.StatusUnauthorized},
		{name: "Admin rejects wrong key", method: http.MethodPost, path: "/api/admin/products", headers: map[string]string{"X-API-Key": "nope"}, expectedStatus: http.StatusForbidden},
		{name: "Bearer token is not an admin key", method: http.MethodGet, path: "/api/admin/orders", headers: map[string]string{"Authorization": "Bearer x"}, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong method", method: http.MethodDelete, path: "/api/products", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown route", method: http.MethodGet, path: "/api/unknown", expectedStatus: http.StatusNotFound},
		{name: "Preflight", method: http.MethodOptions, path: "/api/cart", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))
		})
	}
}
