package handler

import (
	"io"
	"net/http"

	"storefront/internal/cache"
	"storefront/internal/identity"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

const maxWebhookBody = 1 << 20

// WebhookVerifier authenticates a raw webhook delivery.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) (model.IdentityEvent, error)
}

// WebhookHandler receives identity-provider user events.
type WebhookHandler struct {
	verifier WebhookVerifier
	dedup    cache.Deduplicator
	service  service.UserService
	logger   zerolog.Logger
}

// NewWebhookHandler creates a webhook handler. A nil dedup processes every
// delivery; a nil verifier rejects every delivery.
func NewWebhookHandler(verifier WebhookVerifier, dedup cache.Deduplicator, service service.UserService, logger zerolog.Logger) *WebhookHandler {
	if dedup == nil {
		dedup = cache.NopDeduplicator{}
	}
	return &WebhookHandler{
		verifier: verifier,
		dedup:    dedup,
		service:  service,
		logger:   logger.With().Str("handler", "webhook").Logger(),
	}
}

// Identity handles POST /api/webhooks/identity.
func (h *WebhookHandler) Identity(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, r, model.InvalidInput("Unreadable webhook body"), h.logger)
		return
	}

	if h.verifier == nil {
		writeError(w, r, model.InvalidInput("Webhooks are not configured"), h.logger)
		return
	}

	event, err := h.verifier.Verify(payload, r.Header)
	if err != nil {
		h.logger.Warn().Err(err).Msg("webhook verification failed")
		writeError(w, r, model.InvalidInput("Webhook verification failed"), h.logger)
		return
	}

	deliveryID := r.Header.Get(identity.DeliveryIDHeader)
	first, err := h.dedup.FirstDelivery(r.Context(), deliveryID)
	if err != nil {
		h.logger.Warn().Err(err).Str("delivery_id", deliveryID).Msg("delivery de-duplication unavailable")
		first = true
	}
	if !first {
		writeMessage(w, http.StatusOK, "Duplicate delivery ignored")
		return
	}

	if err := h.service.SyncIdentity(r.Context(), event); err != nil {
		if forgetErr := h.dedup.Forget(r.Context(), deliveryID); forgetErr != nil {
			h.logger.Warn().Err(forgetErr).Str("delivery_id", deliveryID).Msg("failed to release delivery id")
		}
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("event", string(event.Type)).
		Str("external_id", event.ExternalID).
		Str("delivery_id", deliveryID).
		Msg("identity webhook processed")
	writeMessage(w, http.StatusOK, "Webhook processed")
}
