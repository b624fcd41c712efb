package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

// apiResponse is the envelope returned by every endpoint.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, apiResponse{Success: true, Data: data})
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, statusFor(err))
	render.JSON(w, r, apiResponse{Success: false, Error: err.Error()})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var compErr *engine.ComputationError
	var valErr *auth.ValidationError
	switch {
	case errors.As(err, &compErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession),
		errors.Is(err, auth.ErrInvalidResetCode):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrUnknownCategory):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
