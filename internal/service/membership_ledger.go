package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

const membershipLedgerName = "membership"

// MembershipLedger owns the club membership join relation.
type MembershipLedger struct {
	memberships repository.MembershipRepository
	clubs       repository.ClubRepository
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// JoinInput carries the details a student supplies when joining a club.
type JoinInput struct {
	UserID      string
	ClubID      string
	StudentName string
	StudentID   string
	Major       string
	Reason      string
}

// NewMembershipLedger constructs the ledger.
func NewMembershipLedger(deps LedgerDependencies) *MembershipLedger {
	return &MembershipLedger{
		memberships: deps.Store.Memberships,
		clubs:       deps.Store.Clubs,
		dispatcher:  deps.dispatcher(),
		metrics:     deps.Metrics,
		logger:      deps.logger(),
	}
}

// Join creates the membership for (UserID, ClubID). A second join for the
// same pair fails with a conflict raised by the store's insert.
func (l *MembershipLedger) Join(ctx context.Context, input JoinInput) (m *domain.Membership, err error) {
	defer func() { l.metrics.RecordLedgerOp(membershipLedgerName, "join", outcome(err)) }()

	userID := domain.NormalizeID(input.UserID)
	clubID := domain.NormalizeID(input.ClubID)
	if userID == "" || clubID == "" {
		return nil, apperrors.NewValidationError("userId and clubId are required", nil)
	}
	if !domain.ValidID(userID) {
		return nil, apperrors.NewValidationError("invalid userId", map[string]any{"userId": userID})
	}
	if _, err := l.clubs.GetByID(ctx, clubID); err != nil {
		return nil, storeError("club", err)
	}

	m = &domain.Membership{
		UserID:      userID,
		ClubID:      clubID,
		StudentName: strings.TrimSpace(input.StudentName),
		StudentID:   strings.TrimSpace(input.StudentID),
		Major:       strings.TrimSpace(input.Major),
		Reason:      strings.TrimSpace(input.Reason),
	}
	if err := l.memberships.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Already joined", map[string]any{
				"userId": userID,
				"clubId": clubID,
			})
		}
		return nil, storeError("membership", err)
	}

	publish(ctx, l.dispatcher, l.logger, events.Event{
		Type:    events.EventMembershipJoined,
		Payload: events.NewMembershipPayload(m),
	})
	return m, nil
}

// Leave removes the caller's membership of clubID.
func (l *MembershipLedger) Leave(ctx context.Context, userID, clubID string) (err error) {
	defer func() { l.metrics.RecordLedgerOp(membershipLedgerName, "leave", outcome(err)) }()

	key := domain.MembershipKey{UserID: domain.NormalizeID(userID), ClubID: domain.NormalizeID(clubID)}
	if key.UserID == "" || key.ClubID == "" {
		return apperrors.NewValidationError("userId and clubId are required", nil)
	}
	return l.remove(ctx, key)
}

// RemoveByID removes a membership addressed by its own id.
func (l *MembershipLedger) RemoveByID(ctx context.Context, membershipID string) (err error) {
	defer func() { l.metrics.RecordLedgerOp(membershipLedgerName, "remove", outcome(err)) }()

	key := domain.MembershipKey{ID: domain.NormalizeID(membershipID)}
	if key.ID == "" {
		return apperrors.NewValidationError("Missing membership id", nil)
	}
	return l.remove(ctx, key)
}

// Remove deletes the membership addressed by key, by id or by pair.
func (l *MembershipLedger) Remove(ctx context.Context, key domain.MembershipKey) error {
	if key.ByID() {
		return l.RemoveByID(ctx, key.ID)
	}
	return l.Leave(ctx, key.UserID, key.ClubID)
}

// remove is the single delete path for both key forms. A missing membership
// is reported as NotFound; callers decide whether to surface it.
func (l *MembershipLedger) remove(ctx context.Context, key domain.MembershipKey) error {
	var (
		existing *domain.Membership
		err      error
	)
	if key.ByID() {
		existing, err = l.memberships.GetByID(ctx, key.ID)
	} else {
		existing, err = l.memberships.Find(ctx, key.UserID, key.ClubID)
	}
	if err != nil {
		return storeError("membership", err)
	}

	if err := l.memberships.Delete(ctx, domain.MembershipKey{ID: existing.ID}); err != nil {
		return storeError("membership", err)
	}

	publish(ctx, l.dispatcher, l.logger, events.Event{
		Type:    events.EventMembershipRemoved,
		Payload: events.NewMembershipPayload(existing),
	})
	return nil
}

// List returns every membership, newest first.
func (l *MembershipLedger) List(ctx context.Context) ([]domain.Membership, error) {
	list, err := l.memberships.List(ctx)
	if err != nil {
		return nil, storeError("membership", err)
	}
	return list, nil
}

// ListByClub returns the memberships of one club.
func (l *MembershipLedger) ListByClub(ctx context.Context, clubID string) ([]domain.Membership, error) {
	list, err := l.memberships.ListByClub(ctx, domain.NormalizeID(clubID))
	if err != nil {
		return nil, storeError("membership", err)
	}
	return list, nil
}

// ListByUser returns the memberships held by one user.
func (l *MembershipLedger) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	list, err := l.memberships.ListByUser(ctx, domain.NormalizeID(userID))
	if err != nil {
		return nil, storeError("membership", err)
	}
	return list, nil
}

// Exists reports whether userID is a member of clubID.
func (l *MembershipLedger) Exists(ctx context.Context, userID, clubID string) (bool, error) {
	userID, clubID = domain.NormalizeID(userID), domain.NormalizeID(clubID)
	if userID == "" || clubID == "" {
		return false, nil
	}
	_, err := l.memberships.Find(ctx, userID, clubID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, storeError("membership", err)
	}
}

// CascadeDeleteByClub removes every membership of clubID and reports how many
// went. Only the coordinator calls this, before deleting the club itself.
func (l *MembershipLedger) CascadeDeleteByClub(ctx context.Context, clubID string) (removed int, err error) {
	defer func() { l.metrics.RecordLedgerOp(membershipLedgerName, "cascade", outcome(err)) }()

	removed, err = l.memberships.DeleteByClub(ctx, domain.NormalizeID(clubID))
	if err != nil {
		return 0, storeError("membership", err)
	}
	l.metrics.RecordCascade(membershipLedgerName, removed)
	return removed, nil
}
