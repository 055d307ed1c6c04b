package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// storeError translates driver sentinels into client-facing domain errors.
func storeError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrInvalidID):
		return apperrors.NewValidationError("invalid id", map[string]any{"resource": resource})
	case errors.Is(err, repository.ErrConflict):
		return apperrors.NewConflict(resource+" already exists", nil)
	case errors.Is(err, repository.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return apperrors.NewStoreUnavailable(err)
	default:
		return apperrors.NewInternalError(err)
	}
}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperrors.ToDomainError(err).Code
}

// publish emits an activity event. Delivery failures never fail the caller's
// mutation, which has already been persisted.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("activity publish failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
