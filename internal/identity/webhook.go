package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/model"

	svix "github.com/svix/svix-webhooks/go"
)

// ErrInvalidSignature is returned when a webhook fails signature verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// DeliveryIDHeader carries the provider's unique id for a webhook delivery.
const DeliveryIDHeader = "svix-id"

// WebhookVerifier authenticates identity-provider webhooks and decodes them.
type WebhookVerifier struct {
	wh *svix.Webhook
}

// NewWebhookVerifier creates a verifier for a "whsec_..." signing secret.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return &WebhookVerifier{wh: wh}, nil
}

type userPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// Verify checks the svix signature headers against the raw body and returns the
// decoded event.
func (v *WebhookVerifier) Verify(payload []byte, headers http.Header) (model.IdentityEvent, error) {
	if err := v.wh.Verify(payload, headers); err != nil {
		return model.IdentityEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return decodeEvent(payload)
}

func decodeEvent(payload []byte) (model.IdentityEvent, error) {
	var p userPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return model.IdentityEvent{}, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	event := model.IdentityEvent{
		Type:       model.IdentityEventType(p.Type),
		ExternalID: p.Data.ID,
		FirstName:  p.Data.FirstName,
		LastName:   p.Data.LastName,
		AvatarURL:  p.Data.ImageURL,
	}
	if len(p.Data.EmailAddresses) > 0 {
		event.Email = p.Data.EmailAddresses[0].EmailAddress
	}
	return event, nil
}
