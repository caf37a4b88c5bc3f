package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/http/dto"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success    bool                  `json:"success"`
	Data       any                   `json:"data,omitempty"`
	Error      string                `json:"error,omitempty"`
	Message    string                `json:"message,omitempty"`
	Details    []dto.ValidationError `json:"details,omitempty"`
	Pagination *dto.Pagination       `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) ok(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Response{Success: true, Data: data, Message: message})
}

func (h *Handler) validationFailed(w http.ResponseWriter, errs []dto.ValidationError) {
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Validation failed", Message: dto.ToResponse(errs), Details: errs})
}

// fail maps domain errors onto status codes. Server-side failures are logged
// and their cause is not echoed to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	msg := fallback
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Week not found"
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error(fallback, "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, Response{Success: false, Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}
