package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeMissingParameter   = "MISSING_PARAMETER"
	ErrCodeProfileNotFound    = "PROFILE_NOT_FOUND"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidProfile     = "INVALID_PROFILE"
	ErrCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	ErrCodePublishUnavailable = "PUBLISH_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

var (
	// Caller input
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidProfile   = errors.New("invalid profile")

	// Lookup
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateEmail  = errors.New("a profile with this email already exists")

	// Infrastructure
	ErrStoreUnavailable   = errors.New("profile store unavailable")
	ErrPublishUnavailable = errors.New("profile publishing is not configured")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingParameter):
		return ErrCodeMissingParameter
	case errors.Is(err, ErrProfileNotFound):
		return ErrCodeProfileNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return ErrCodeDuplicateEmail
	case errors.Is(err, ErrInvalidProfile):
		return ErrCodeInvalidProfile
	case errors.Is(err, ErrStoreUnavailable):
		return ErrCodeStoreUnavailable
	case errors.Is(err, ErrPublishUnavailable):
		return ErrCodePublishUnavailable
	default:
		return ErrCodeInternal
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrPublishUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
