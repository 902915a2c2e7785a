package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubWebhookVerifier struct {
	event model.IdentityEvent
	err   error
}

func (s stubWebhookVerifier) Verify([]byte, http.Header) (model.IdentityEvent, error) {
	return s.event, s.err
}

type memoryDedup struct {
	seen      map[string]bool
	err       error
	forgotten []string
}

func (d *memoryDedup) FirstDelivery(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *memoryDedup) Forget(_ context.Context, id string) error {
	delete(d.seen, id)
	d.forgotten = append(d.forgotten, id)
	return nil
}

func webhookRequest(deliveryID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewBufferString(`{"type":"user.created"}`))
	req.Header.Set("svix-id", deliveryID)
	return req
}

func TestWebhookHandler_Identity(t *testing.T) {
	event := model.IdentityEvent{Type: model.IdentityUserCreated, ExternalID: "user_1", Email: "ada@example.com"}

	t.Run("Processes verified delivery once", func(t *testing.T) {
		users := new(MockUserService)
		dedup := &memoryDedup{seen: map[string]bool{}}
		handler := NewWebhookHandler(stubWebhookVerifier{event: event}, dedup, users, zerolog.Nop())
		users.On("SyncIdentity", mock.Anything, event).Return(nil).Once()

		w := httptest.NewRecorder()
		handler.Identity(w, webhookRequest("msg_1"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.Identity(w, webhookRequest("msg_1"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Duplicate")

		users.AssertNumberOfCalls(t, "SyncIdentity", 1)
	})

	t.Run("Signature failure", func(t *testing.T) {
		users := new(MockUserService)
		handler := NewWebhookHandler(stubWebhookVerifier{err: errors.New("bad signature")}, nil, users, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Identity(w, webhookRequest("msg_2"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		users.AssertNotCalled(t, "SyncIdentity", mock.Anything, mock.Anything)
	})

	t.Run("Failed sync releases delivery id", func(t *testing.T) {
		users := new(MockUserService)
		dedup := &memoryDedup{seen: map[string]bool{}}
		handler := NewWebhookHandler(stubWebhookVerifier{event: event}, dedup, users, zerolog.Nop())
		users.On("SyncIdentity", mock.Anything, event).Return(errors.New("db down"))

		w := httptest.NewRecorder()
		handler.Identity(w, webhookRequest("msg_3"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, []string{"msg_3"}, dedup.forgotten)
	})

	t.Run("De-duplication outage still processes", func(t *testing.T) {
		users := new(MockUserService)
		dedup := &memoryDedup{seen: map[string]bool{}, err: errors.New("redis down")}
		handler := NewWebhookHandler(stubWebhookVerifier{event: event}, dedup, users, zerolog.Nop())
		users.On("SyncIdentity", mock.Anything, event).Return(nil)

		w := httptest.NewRecorder()
		handler.Identity(w, webhookRequest("msg_4"))

		assert.Equal(t, http.StatusOK, w.Code)
		users.AssertExpectations(t)
	})
}
