package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

const registrationLedgerName = "registration"

// RegistrationLedger owns the event registration join relation.
type RegistrationLedger struct {
	registrations repository.RegistrationRepository
	events        repository.EventRepository
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewRegistrationLedger constructs the ledger.
func NewRegistrationLedger(deps LedgerDependencies) *RegistrationLedger {
	return &RegistrationLedger{
		registrations: deps.Store.Registrations,
		events:        deps.Store.Events,
		dispatcher:    deps.dispatcher(),
		metrics:       deps.Metrics,
		logger:        deps.logger(),
	}
}

// Register records userID as attending eventID.
func (l *RegistrationLedger) Register(ctx context.Context, userID, eventID string) (reg *domain.Registration, err error) {
	defer func() { l.metrics.RecordLedgerOp(registrationLedgerName, "register", outcome(err)) }()

	userID, eventID = domain.NormalizeID(userID), domain.NormalizeID(eventID)
	if userID == "" || eventID == "" {
		return nil, apperrors.NewValidationError("userId and eventId are required", nil)
	}
	if !domain.ValidID(userID) {
		return nil, apperrors.NewValidationError("invalid userId", map[string]any{"userId": userID})
	}
	if _, err := l.events.GetByID(ctx, eventID); err != nil {
		return nil, storeError("event", err)
	}

	reg = &domain.Registration{UserID: userID, EventID: eventID}
	if err := l.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Already registered", map[string]any{
				"userId":  userID,
				"eventId": eventID,
			})
		}
		return nil, storeError("registration", err)
	}

	publish(ctx, l.dispatcher, l.logger, events.Event{
		Type:    events.EventRegistrationCreated,
		Payload: events.NewRegistrationPayload(reg),
	})
	return reg, nil
}

// Unregister removes the registration of userID for eventID.
func (l *RegistrationLedger) Unregister(ctx context.Context, userID, eventID string) (err error) {
	defer func() { l.metrics.RecordLedgerOp(registrationLedgerName, "unregister", outcome(err)) }()

	key := domain.RegistrationKey{UserID: domain.NormalizeID(userID), EventID: domain.NormalizeID(eventID)}
	if key.UserID == "" || key.EventID == "" {
		return apperrors.NewValidationError("userId and eventId are required", nil)
	}
	return l.remove(ctx, key)
}

// RemoveByID removes a registration addressed by its own id.
func (l *RegistrationLedger) RemoveByID(ctx context.Context, registrationID string) (err error) {
	defer func() { l.metrics.RecordLedgerOp(registrationLedgerName, "remove", outcome(err)) }()

	key := domain.RegistrationKey{ID: domain.NormalizeID(registrationID)}
	if key.ID == "" {
		return apperrors.NewValidationError("Missing registration id", nil)
	}
	return l.remove(ctx, key)
}

func (l *RegistrationLedger) remove(ctx context.Context, key domain.RegistrationKey) error {
	var (
		existing *domain.Registration
		err      error
	)
	if key.ByID() {
		existing, err = l.registrations.GetByID(ctx, key.ID)
	} else {
		existing, err = l.registrations.Find(ctx, key.UserID, key.EventID)
	}
	if err != nil {
		return storeError("registration", err)
	}

	if err := l.registrations.Delete(ctx, domain.RegistrationKey{ID: existing.ID}); err != nil {
		return storeError("registration", err)
	}

	publish(ctx, l.dispatcher, l.logger, events.Event{
		Type:    events.EventRegistrationRemoved,
		Payload: events.NewRegistrationPayload(existing),
	})
	return nil
}

// List returns every registration.
func (l *RegistrationLedger) List(ctx context.Context) ([]domain.Registration, error) {
	list, err := l.registrations.List(ctx)
	if err != nil {
		return nil, storeError("registration", err)
	}
	return list, nil
}

// ListByEvent returns the registrations for one event.
func (l *RegistrationLedger) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	list, err := l.registrations.ListByEvent(ctx, domain.NormalizeID(eventID))
	if err != nil {
		return nil, storeError("registration", err)
	}
	return list, nil
}

// ListByUser returns the registrations held by one user.
func (l *RegistrationLedger) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	list, err := l.registrations.ListByUser(ctx, domain.NormalizeID(userID))
	if err != nil {
		return nil, storeError("registration", err)
	}
	return list, nil
}

// Exists reports whether userID is registered for eventID.
func (l *RegistrationLedger) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	userID, eventID = domain.NormalizeID(userID), domain.NormalizeID(eventID)
	if userID == "" || eventID == "" {
		return false, nil
	}
	_, err := l.registrations.Find(ctx, userID, eventID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, storeError("registration", err)
	}
}

// CascadeDeleteByEvent removes every registration of eventID.
func (l *RegistrationLedger) CascadeDeleteByEvent(ctx context.Context, eventID string) (removed int, err error) {
	defer func() { l.metrics.RecordLedgerOp(registrationLedgerName, "cascade", outcome(err)) }()

	removed, err = l.registrations.DeleteByEvent(ctx, domain.NormalizeID(eventID))
	if err != nil {
		return 0, storeError("registration", err)
	}
	l.metrics.RecordCascade(registrationLedgerName, removed)
	return removed, nil
}
