package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProfileHandler serves the caller's saved profile defaults.
type ProfileHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

func NewProfileHandler(service service.UserService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// GetAddress handles GET /api/profile/address.
func (h *ProfileHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.service.GetDefaultAddress(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, model.AddressRequest{Address: address})
}

// SetAddress handles PUT /api/profile/address.
func (h *ProfileHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var req model.AddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.SetDefaultAddress(r.Context(), principal(r), req.Address); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeMessage(w, http.StatusOK, "Address updated")
}
