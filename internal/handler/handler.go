package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxJSONBody = 1 << 20

// Response is the envelope for successful responses.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:       http.StatusBadRequest,
	model.ErrCodeInvalidInput:      http.StatusBadRequest,
	model.ErrCodeEmptyCart:         http.StatusBadRequest,
	model.ErrCodeNotAuthenticated:  http.StatusUnauthorized,
	model.ErrCodeUnauthorised:      http.StatusUnauthorized,
	model.ErrCodeForbidden:         http.StatusForbidden,
	model.ErrCodeUserNotFound:      http.StatusNotFound,
	model.ErrCodeOrderNotFound:     http.StatusNotFound,
	model.ErrCodeProductNotFound:   http.StatusNotFound,
	model.ErrCodeCartItemNotFound:  http.StatusNotFound,
	model.ErrCodeWishlistNotFound:  http.StatusNotFound,
	model.ErrCodeInsufficientStock: http.StatusConflict,
	model.ErrCodeNotCancelable:     http.StatusConflict,
	model.ErrCodeAlreadyFinal:      http.StatusConflict,
	model.ErrCodeAlreadyInWishlist: http.StatusConflict,
	model.ErrCodeTransactionFailed: http.StatusInternalServerError,
	model.ErrCodeInternalError:     http.StatusInternalServerError,
}

var errInvalidJSON = model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid request body")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already written; nothing useful left to tell the client.
		return
	}
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: true, Message: message})
}

// writeError maps err to a status code and writes the error envelope.
// Errors that are not domain errors are logged and reported generically.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	correlationID := middleware.CorrelationIDFrom(r.Context())
	code, message := model.ErrCodeInternalError, "Internal server error"

	var stockErr *model.InsufficientStockError
	var domainErr *model.DomainError
	switch {
	case errors.As(err, &stockErr):
		code, message = stockErr.Code(), stockErr.Error()
	case errors.As(err, &domainErr):
		code, message = domainErr.Code, domainErr.Message
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Err(err).
		Str("code", code).
		Int("status", status).
		Str("path", r.URL.Path).
		Str("correlation_id", correlationID).
		Msg("request failed")

	writeJSON(w, status, model.ErrorResponse{
		Success:       false,
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errInvalidJSON
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
	}
	return nil
}

// pathUUID parses a UUID path wildcard.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.InvalidInput("Invalid " + name + " format")
	}
	return id, nil
}

func principal(r *http.Request) string {
	return middleware.PrincipalFrom(r.Context())
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "healthy"})
}
