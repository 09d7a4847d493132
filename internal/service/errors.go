package service

import "errors"

var (
	ErrInternal        = errors.New("internal server error")
	ErrUnauthenticated = errors.New("authentication required")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrContentTooLong  = errors.New("content exceeds the maximum length")
	ErrPostNotFound    = errors.New("post not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUpstream        = errors.New("upstream service unavailable")
)
