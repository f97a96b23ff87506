package apperrors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrOrderNotFound       = errors.New("order not found")
	ErrListingNotFound     = errors.New("listing not found")
	ErrInvalidField        = errors.New("invalid field")
	ErrInvalidFieldValue   = errors.New("invalid field value")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalServer      = errors.New("internal server error")
	ErrMirrorNotConfigured = errors.New("mirror not configured")
	ErrFileTypeNotAllowed  = errors.New("filetype not allowed")
)
