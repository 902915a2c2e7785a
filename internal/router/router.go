package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers that the router mounts.
type Handlers struct {
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Profile  *handler.ProfileHandler
	Webhook  *handler.WebhookHandler
}

// Config holds the router's security settings.
type Config struct {
	APIKey        string
	AllowedOrigin string
	Verifier      middleware.TokenVerifier
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, cfg Config, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	customer := middleware.Authenticate(cfg.Verifier, logger)
	admin := middleware.APIKeyAuth(cfg.APIKey, logger)

	authed := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, customer(fn))
	}
	adminOnly := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, admin(fn))
	}

	mux.HandleFunc("GET /health", handler.Health)

	// Catalogue
	mux.HandleFunc("GET /api/products", h.Product.GetAll)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/categories/{category}/products", h.Product.GetByCategory)

	// Cart
	authed("GET /api/cart", h.Cart.Get)
	authed("POST /api/cart/items", h.Cart.AddItem)
	authed("PATCH /api/cart/items/{id}", h.Cart.UpdateItem)
	authed("DELETE /api/cart/items/{id}", h.Cart.RemoveItem)

	// Orders
	authed("POST /api/orders", h.Order.Place)
	authed("GET /api/orders", h.Order.List)
	authed("GET /api/orders/{id}", h.Order.Get)
	authed("POST /api/orders/{id}/cancel", h.Order.Cancel)

	// Wishlist
	authed("GET /api/wishlist", h.Wishlist.List)
	authed("POST /api/wishlist/items", h.Wishlist.Add)
	authed("DELETE /api/wishlist/items/{productId}", h.Wishlist.Remove)

	// Profile
	authed("GET /api/profile/address", h.Profile.GetAddress)
	authed("PUT /api/profile/address", h.Profile.SetAddress)

	// Admin
	adminOnly("GET /api/admin/orders", h.Order.ListAll)
	adminOnly("POST /api/admin/orders/{id}/deliver", h.Order.MarkDelivered)
	adminOnly("POST /api/admin/products", h.Product.Create)

	// Webhooks authenticate by signature, not by token.
	mux.HandleFunc("POST /api/webhooks/identity", h.Webhook.Identity)

	// Apply middleware in order: CorrelationID -> Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(cfg.AllowedOrigin)(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)
	root = middleware.CorrelationID(root)

	return root
}
