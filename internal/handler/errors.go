package handler

import (
	"errors"
	"net/http"

	"github.com/chirpnet/feed-service/internal/service"
)

var (
	errNotAuthorized   = errors.New("user is not authorized")
	errInvalidPostID   = errors.New("invalid post ID")
	errInvalidUserID   = errors.New("invalid user ID")
	errInvalidUsername = errors.New("invalid username")
)

func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrContentTooLong):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
