package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Townsend-Lab-Yale/lift-coords/application/service"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/liftover"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/tabular"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
)

// APIError is an error with an explicit HTTP status.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the cause.
func (e *APIError) Unwrap() error { return e.cause }

// ErrorBody is the JSON error response.
type ErrorBody struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code()
	case errors.Is(err, genome.ErrInvalidBuild),
		errors.Is(err, chain.ErrSameBuild),
		errors.Is(err, table.ErrMissingColumn),
		errors.Is(err, table.ErrRowWidth),
		errors.Is(err, table.ErrDuplicateIndex),
		errors.Is(err, tabular.ErrEmpty):
		return http.StatusBadRequest
	case errors.Is(err, chain.ErrUnknownPair):
		return http.StatusNotFound
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, liftover.ErrExternalTool):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrChainFileMissing), errors.Is(err, service.ErrClientClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := StatusFor(err)
	requestID := middleware.GetReqID(r.Context())

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request error",
			slog.String("request_id", requestID),
			slog.Int("status", status),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Message()
	}

	WriteJSON(w, status, ErrorBody{
		Error:     http.StatusText(status),
		Detail:    detail,
		RequestID: requestID,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
