package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/au-connect/internal/domain"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// ClubView is a club with its derived member count and the caller's status.
type ClubView struct {
	domain.Club
	MemberCount int
	IsMember    bool
}

// EventView is an event with its derived registration count and the caller's status.
type EventView struct {
	domain.Event
	RegistrationCount int
	IsRegistered      bool
}

// StudentDashboard is what a signed-in student sees on their home page.
type StudentDashboard struct {
	User           *domain.User
	JoinedClubs    []ClubView
	AvailableClubs []ClubView
	Events         []EventView
}

// AdminOverview summarises every club and event for administrators.
type AdminOverview struct {
	Clubs              []ClubView
	Events             []EventView
	TotalMembers       int
	TotalRegistrations int
}

// DashboardService assembles read models combining entities with ledger state.
type DashboardService struct {
	clubs         *ClubService
	events        *EventService
	users         *UserService
	memberships   *MembershipLedger
	registrations *RegistrationLedger
	coordinator   *Coordinator
}

// NewDashboardService builds the service.
func NewDashboardService(clubs *ClubService, events *EventService, users *UserService,
	memberships *MembershipLedger, registrations *RegistrationLedger, coordinator *Coordinator) *DashboardService {
	return &DashboardService{
		clubs:         clubs,
		events:        events,
		users:         users,
		memberships:   memberships,
		registrations: registrations,
		coordinator:   coordinator,
	}
}

// joinedClubs returns the set of club ids actor belongs to. Admins and
// failures yield an empty set.
func (s *DashboardService) joinedClubs(ctx context.Context, actor domain.Actor) map[string]bool {
	joined := map[string]bool{}
	if actor.UserID == "" {
		return joined
	}
	list, err := s.memberships.ListByUser(ctx, actor.UserID)
	if err != nil {
		s.coordinator.logger.Warn("caller memberships unavailable", zap.Error(err))
		return joined
	}
	for _, m := range list {
		joined[domain.NormalizeID(m.ClubID)] = true
	}
	return joined
}

func (s *DashboardService) registeredEvents(ctx context.Context, actor domain.Actor) map[string]bool {
	registered := map[string]bool{}
	if actor.UserID == "" {
		return registered
	}
	list, err := s.registrations.ListByUser(ctx, actor.UserID)
	if err != nil {
		s.coordinator.logger.Warn("caller registrations unavailable", zap.Error(err))
		return registered
	}
	for _, r := range list {
		registered[domain.NormalizeID(r.EventID)] = true
	}
	return registered
}

// ListClubs returns every club with counts and the caller's membership flag.
func (s *DashboardService) ListClubs(ctx context.Context, actor domain.Actor) ([]ClubView, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := s.coordinator.memberCountsOrEmpty(ctx)
	joined := s.joinedClubs(ctx, actor)

	views := make([]ClubView, 0, len(clubs))
	for _, c := range clubs {
		views = append(views, ClubView{Club: c, MemberCount: counts[c.ID], IsMember: joined[c.ID]})
	}
	return views, nil
}

// ClubDetail returns one club with its member count and the caller's status.
func (s *DashboardService) ClubDetail(ctx context.Context, actor domain.Actor, clubID string) (*ClubView, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberships.ListByClub(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	view := &ClubView{Club: *club, MemberCount: len(members)}
	for _, m := range members {
		if actor.UserID != "" && domain.SameID(m.UserID, actor.UserID) {
			view.IsMember = true
			break
		}
	}
	return view, nil
}

// ListEvents returns every event with counts and the caller's registration flag.
func (s *DashboardService) ListEvents(ctx context.Context, actor domain.Actor) ([]EventView, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := s.coordinator.registrationCountsOrEmpty(ctx)
	registered := s.registeredEvents(ctx, actor)

	views := make([]EventView, 0, len(list))
	for _, e := range list {
		views = append(views, EventView{Event: e, RegistrationCount: counts[e.ID], IsRegistered: registered[e.ID]})
	}
	return views, nil
}

// EventDetail returns one event with its registration count and the caller's status.
func (s *DashboardService) EventDetail(ctx context.Context, actor domain.Actor, eventID string) (*EventView, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	view := &EventView{Event: *event, RegistrationCount: len(regs)}
	for _, r := range regs {
		if actor.UserID != "" && domain.SameID(r.UserID, actor.UserID) {
			view.IsRegistered = true
			break
		}
	}
	return view, nil
}

// Student builds the dashboard for the calling student.
func (s *DashboardService) Student(ctx context.Context, actor domain.Actor) (*StudentDashboard, error) {
	if actor.UserID == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	var (
		user   *domain.User
		clubs  []ClubView
		events []EventView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.users.Get(gctx, actor.UserID)
		return err
	})
	g.Go(func() (err error) {
		clubs, err = s.ListClubs(gctx, actor)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.ListEvents(gctx, actor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash := &StudentDashboard{
		User:           user,
		JoinedClubs:    []ClubView{},
		AvailableClubs: []ClubView{},
		Events:         events,
	}
	for _, c := range clubs {
		if c.IsMember {
			dash.JoinedClubs = append(dash.JoinedClubs, c)
		} else {
			dash.AvailableClubs = append(dash.AvailableClubs, c)
		}
	}
	return dash, nil
}

// Admin builds the administrator overview.
func (s *DashboardService) Admin(ctx context.Context) (*AdminOverview, error) {
	var (
		clubs  []ClubView
		events []EventView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clubs, err = s.ListClubs(gctx, domain.Actor{})
		return err
	})
	g.Go(func() (err error) {
		events, err = s.ListEvents(gctx, domain.Actor{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &AdminOverview{Clubs: clubs, Events: events}
	for _, c := range clubs {
		overview.TotalMembers += c.MemberCount
	}
	for _, e := range events {
		overview.TotalRegistrations += e.RegistrationCount
	}
	return overview, nil
}
