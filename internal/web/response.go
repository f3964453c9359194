package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"badminqueue/internal/queue"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, kind string) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}

// statusFor maps scheduler errors onto HTTP statuses. Anything unclassified is
// a server fault.
func statusFor(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, queue.ErrInsufficientPlayers), errors.Is(err, queue.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity, queue.Kind(err)
	case errors.Is(err, queue.ErrInvalidRosterSize):
		return http.StatusBadRequest, queue.Kind(err)
	case errors.Is(err, queue.ErrUnknownMatch):
		return http.StatusNotFound, queue.Kind(err)
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Sugar().Errorw("request failed", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeError(w, status, err.Error(), kind)
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "invalid_request")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondErr(w, r, err)
		return false
	}
	return true
}
