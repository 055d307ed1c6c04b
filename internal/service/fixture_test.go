package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/repository"
	"github.com/spec-kit/au-connect/internal/repository/memory"
)

type eventLog struct {
	mu    sync.Mutex
	types []events.EventType
}

func (l *eventLog) record(_ context.Context, e events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, e.Type)
	return nil
}

func (l *eventLog) snapshot() []events.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]events.EventType(nil), l.types...)
}

type fixture struct {
	store         *repository.Store
	metrics       *observability.Metrics
	memberships   *MembershipLedger
	registrations *RegistrationLedger
	coordinator   *Coordinator
	clubs         *ClubService
	events        *EventService
	users         *UserService
	dashboard     *DashboardService
	log           *eventLog
}

func newFixture(t *testing.T, wrap ...func(*repository.Store)) *fixture {
	t.Helper()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var tick int64
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	store := memory.New(memory.WithClock(clock)).Repositories()
	for _, w := range wrap {
		w(store)
	}

	dispatcher := events.NewInMemoryDispatcher()
	log := &eventLog{}
	for _, et := range ActivityTypes {
		dispatcher.Subscribe(et, log.record)
	}

	deps := LedgerDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics("test"),
		Logger:     zap.NewNop(),
	}
	f := &fixture{
		store:         store,
		metrics:       deps.Metrics,
		memberships:   NewMembershipLedger(deps),
		registrations: NewRegistrationLedger(deps),
		clubs:         NewClubService(store.Clubs),
		events:        NewEventService(store.Events),
		users:         NewUserService(store.Users),
		log:           log,
	}
	f.coordinator = NewCoordinator(deps, f.memberships, f.registrations)
	f.dashboard = NewDashboardService(f.clubs, f.events, f.users, f.memberships, f.registrations, f.coordinator)
	return f
}

func (f *fixture) club(t *testing.T, name string) *domain.Club {
	t.Helper()
	club, err := f.clubs.Create(context.Background(), ClubInput{Name: name, Description: gofakeit.Sentence(6)})
	require.NoError(t, err)
	return club
}

func (f *fixture) event(t *testing.T, title, clubID string) *domain.Event {
	t.Helper()
	event, err := f.events.Create(context.Background(), EventInput{
		Title:    title,
		Date:     time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		Location: gofakeit.City(),
		ClubID:   clubID,
	})
	require.NoError(t, err)
	return event
}

func (f *fixture) student(t *testing.T) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  domain.RoleStudent,
	}
	require.NoError(t, f.store.Users.Create(context.Background(), user))
	return user
}

func (f *fixture) join(t *testing.T, userID, clubID string) *domain.Membership {
	t.Helper()
	m, err := f.memberships.Join(context.Background(), JoinInput{UserID: userID, ClubID: clubID, StudentName: gofakeit.Name()})
	require.NoError(t, err)
	return m
}
