package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// Coordinator runs the ordered multi-step deletes and derives counts from the
// ledgers. Deletes are not transactional: a cascade that succeeds followed by
// a failed parent delete leaves the join rows removed.
type Coordinator struct {
	clubs         repository.ClubRepository
	events        repository.EventRepository
	memberships   *MembershipLedger
	registrations *RegistrationLedger
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewCoordinator wires the coordinator to both ledgers.
func NewCoordinator(deps LedgerDependencies, memberships *MembershipLedger, registrations *RegistrationLedger) *Coordinator {
	return &Coordinator{
		clubs:         deps.Store.Clubs,
		events:        deps.Store.Events,
		memberships:   memberships,
		registrations: registrations,
		dispatcher:    deps.dispatcher(),
		logger:        deps.logger(),
	}
}

// DeleteClub removes the club's memberships and then the club.
func (c *Coordinator) DeleteClub(ctx context.Context, clubID string) error {
	clubID = domain.NormalizeID(clubID)
	if clubID == "" {
		return apperrors.NewValidationError("Missing club id", nil)
	}

	removed, err := c.memberships.CascadeDeleteByClub(ctx, clubID)
	if err != nil {
		return err
	}
	if err := c.clubs.Delete(ctx, clubID); err != nil {
		return storeError("club", err)
	}

	c.logger.Info("club deleted", zap.String("club_id", clubID), zap.Int("memberships_removed", removed))
	publish(ctx, c.dispatcher, c.logger, events.Event{
		Type:    events.EventClubDeleted,
		Payload: events.CascadePayload{ParentID: clubID, RemovedRows: removed},
	})
	return nil
}

// DeleteEvent removes the event's registrations and then the event.
func (c *Coordinator) DeleteEvent(ctx context.Context, eventID string) error {
	eventID = domain.NormalizeID(eventID)
	if eventID == "" {
		return apperrors.NewValidationError("Missing event id", nil)
	}

	removed, err := c.registrations.CascadeDeleteByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := c.events.Delete(ctx, eventID); err != nil {
		return storeError("event", err)
	}

	c.logger.Info("event deleted", zap.String("event_id", eventID), zap.Int("registrations_removed", removed))
	publish(ctx, c.dispatcher, c.logger, events.Event{
		Type:    events.EventEventDeleted,
		Payload: events.CascadePayload{ParentID: eventID, RemovedRows: removed},
	})
	return nil
}

// MemberCounts maps club id to its number of memberships. Clubs without
// members are absent from the map.
func (c *Coordinator) MemberCounts(ctx context.Context) (map[string]int, error) {
	list, err := c.memberships.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, m := range list {
		counts[domain.NormalizeID(m.ClubID)]++
	}
	return counts, nil
}

// RegistrationCounts maps event id to its number of registrations.
func (c *Coordinator) RegistrationCounts(ctx context.Context) (map[string]int, error) {
	list, err := c.registrations.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range list {
		counts[domain.NormalizeID(r.EventID)]++
	}
	return counts, nil
}

// IsMember reports whether userID holds a membership of clubID.
func (c *Coordinator) IsMember(ctx context.Context, userID, clubID string) (bool, error) {
	return c.memberships.Exists(ctx, userID, clubID)
}

// IsRegistered reports whether userID is registered for eventID.
func (c *Coordinator) IsRegistered(ctx context.Context, userID, eventID string) (bool, error) {
	return c.registrations.Exists(ctx, userID, eventID)
}

// memberCountsOrEmpty is the read-path variant that degrades to no counts.
func (c *Coordinator) memberCountsOrEmpty(ctx context.Context) map[string]int {
	counts, err := c.MemberCounts(ctx)
	if err != nil {
		c.logger.Warn("member counts unavailable", zap.Error(err))
		return map[string]int{}
	}
	return counts
}

func (c *Coordinator) registrationCountsOrEmpty(ctx context.Context) map[string]int {
	counts, err := c.RegistrationCounts(ctx)
	if err != nil {
		c.logger.Warn("registration counts unavailable", zap.Error(err))
		return map[string]int{}
	}
	return counts
}
