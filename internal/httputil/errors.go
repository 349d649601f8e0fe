package httputil

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/tracker/internal/models"
)

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrUnauthorized     = errors.New("you need to authenticate with a valid bearer token")
	ErrTooManyRequests  = errors.New("too many requests, please try again later")
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error
}

// Status returns the HTTP status code for an error.
func Status(err error) int {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, models.ErrOwnerMissing) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, ErrTooManyRequests) {
		return http.StatusTooManyRequests
	}

	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
