package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"

	"github.com/go-playground/validator/v10"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
	Cause   string            `json:"cause,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func unauthorized(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
}

func forbidden(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrForbidden, msg)
}

func badRequest(format string, args ...any) error {
	return domain.Invalid(format, args...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// a 500; its cause is only echoed outside production.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		resp := errorResponse{Error: "internal server error"}
		if !s.opts.Production {
			resp.Cause = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

// decodeJSON reads a JSON body into dst and runs its validate tags.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		return badRequest("malformed JSON: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return s.validate.Struct(dst)
}
