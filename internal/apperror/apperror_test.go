package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("limit", "limit must be a positive integer")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "limit", err.Field)
	assert.Equal(t, "limit must be a positive integer", err.Error())
}

func TestFetchFailed_WrapsSentinel(t *testing.T) {
	err := FetchFailed("posts:u1", errors.New("status 503"))

	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.Contains(t, err.Error(), "posts:u1")
	assert.Contains(t, err.Error(), "status 503")
}

func TestDirectoryUnavailable_SurvivesWrapping(t *testing.T) {
	inner := DirectoryUnavailable(errors.New("connection refused"))
	wrapped := fmt.Errorf("top users: %w", inner)

	assert.ErrorIs(t, wrapped, ErrDirectoryUnavailable)
	assert.NotErrorIs(t, wrapped, ErrValidation)
}
