package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// WishlistHandler handles requests on the caller's wishlist.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, products)
}

// Add handles POST /api/wishlist/items.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.WishlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Add(r.Context(), principal(r), req.ProductID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeMessage(w, http.StatusCreated, "Added to wishlist")
}

// Remove handles DELETE /api/wishlist/items/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), principal(r), productID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from wishlist")
}
