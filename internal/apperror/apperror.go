package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	// ErrUpstream marks any transport-level failure talking to the
	// remote source (network, auth, non-2xx status).
	ErrUpstream = errors.New("upstream unavailable")
	// ErrFetchFailure is an upstream failure with no cached value to
	// fall back to.
	ErrFetchFailure = errors.New("fetch failed")
	// ErrDirectoryUnavailable is fatal for a whole computation: the
	// user directory could not be obtained at all.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
)

type AppError struct {
	Err     error  // sentinel the caller can branch on
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func FetchFailed(key string, cause error) *AppError {
	return &AppError{
		Err:     ErrFetchFailure,
		Message: fmt.Sprintf("no cached data for %s and refresh failed: %s", key, cause),
	}
}

func DirectoryUnavailable(cause error) *AppError {
	return &AppError{
		Err:     ErrDirectoryUnavailable,
		Message: fmt.Sprintf("user directory unavailable: %s", cause),
	}
}
