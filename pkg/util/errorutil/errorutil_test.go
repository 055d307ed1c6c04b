package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		require.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		err := fmt.Errorf("join: %w", NewConflict("already joined", nil))
		de := ToDomainError(err)
		require.Equal(t, CodeConflict, de.Code)
		require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	})

	t.Run("fiber errors keep their status", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
		require.Equal(t, CodeNotFound, de.Code)
		require.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("deadline exceeded is a store outage", func(t *testing.T) {
		de := ToDomainError(context.DeadlineExceeded)
		require.Equal(t, CodeStoreUnavailable, de.Code)
		require.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		de := ToDomainError(errors.New("boom"))
		require.Equal(t, CodeInternal, de.Code)
		require.ErrorContains(t, de, "boom")
	})
}

func TestIs(t *testing.T) {
	t.Parallel()

	require.True(t, Is(NewNotFound("club", nil), CodeNotFound))
	require.False(t, Is(NewNotFound("club", nil), CodeConflict))
	require.False(t, Is(nil, CodeNotFound))
}
