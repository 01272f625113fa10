package errors

import "errors"

// Common error types for the catalog client
var (
	// Authentication errors
	ErrAuthentication = errors.New("authentication failed")
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrInputClosed    = errors.New("credential input closed")

	// Retrieval errors
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrKeyRotationLimit  = errors.New("api key rotation limit reached")

	// Geometry errors
	ErrGeometry = errors.New("invalid geometry")

	// General errors
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
