// Package memory is an in-process store driver used when no Postgres DSN is
// configured and by tests. All tables share one mutex so that the
// check-and-insert on join tables is atomic, mirroring the unique indexes of
// the Postgres schema.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
)

type row[T any] struct {
	seq uint64
	val T
}

type pair struct {
	left, right string
}

// Store holds every table in memory.
type Store struct {
	mu  sync.RWMutex
	seq uint64
	now func() time.Time

	users         map[string]row[domain.User]
	emails        map[string]string
	clubs         map[string]row[domain.Club]
	events        map[string]row[domain.Event]
	memberships   map[string]row[domain.Membership]
	membershipIdx map[pair]string
	registrations map[string]row[domain.Registration]
	registerIdx   map[pair]string
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:           func() time.Time { return time.Now().UTC() },
		users:         map[string]row[domain.User]{},
		emails:        map[string]string{},
		clubs:         map[string]row[domain.Club]{},
		events:        map[string]row[domain.Event]{},
		memberships:   map[string]row[domain.Membership]{},
		membershipIdx: map[pair]string{},
		registrations: map[string]row[domain.Registration]{},
		registerIdx:   map[pair]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Users:         userTable{s},
		Clubs:         clubTable{s},
		Events:        eventTable{s},
		Memberships:   membershipTable{s},
		Registrations: registrationTable{s},
		Pinger:        s,
	}
}

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) next() (string, uint64, time.Time) {
	s.seq++
	return uuid.NewString(), s.seq, s.now()
}

// tieOrder breaks compare ties by insertion sequence.
type tieOrder int

const (
	oldestTiesFirst tieOrder = iota
	newestTiesFirst
)

// sorted returns table values ordered by compare, ties broken by insertion
// order in the given direction.
func sorted[T any](rows map[string]row[T], keep func(T) bool, compare func(a, b T) int, ties tieOrder) []T {
	list := make([]row[T], 0, len(rows))
	for _, r := range rows {
		if keep == nil || keep(r.val) {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if c := compare(list[i].val, list[j].val); c != 0 {
			return c < 0
		}
		if ties == newestTiesFirst {
			return list[i].seq > list[j].seq
		}
		return list[i].seq < list[j].seq
	})
	out := make([]T, len(list))
	for i := range list {
		out[i] = list[i].val
	}
	return out
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

type userTable struct{ s *Store }

func (t userTable) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, taken := t.s.emails[email]; taken {
		return repository.ErrConflict
	}
	id, seq, now := t.s.next()
	user.ID, user.CreatedAt, user.UpdatedAt = id, now, now
	user.Interests = slices.Clone(user.Interests)
	if user.Interests == nil {
		user.Interests = []string{}
	}
	t.s.users[id] = row[domain.User]{seq: seq, val: *user}
	t.s.emails[email] = id
	return nil
}

func (t userTable) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	existing, ok := t.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored := existing.val
	stored.Name = user.Name
	stored.Major = user.Major
	stored.Interests = slices.Clone(user.Interests)
	stored.UpdatedAt = t.s.now()
	t.s.users[user.ID] = row[domain.User]{seq: existing.seq, val: stored}
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (t userTable) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := r.val
	user.Interests = slices.Clone(user.Interests)
	return &user, nil
}

func (t userTable) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	t.s.mu.RLock()
	id, ok := t.s.emails[strings.ToLower(email)]
	t.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.GetByID(ctx, id)
}

type clubTable struct{ s *Store }

func (t clubTable) Create(ctx context.Context, club *domain.Club) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id, seq, now := t.s.next()
	club.ID, club.CreatedAt, club.UpdatedAt = id, now, now
	t.s.clubs[id] = row[domain.Club]{seq: seq, val: *club}
	return nil
}

func (t clubTable) Update(ctx context.Context, club *domain.Club) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	existing, ok := t.s.clubs[club.ID]
	if !ok {
		return repository.ErrNotFound
	}
	club.CreatedAt = existing.val.CreatedAt
	club.UpdatedAt = t.s.now()
	t.s.clubs[club.ID] = row[domain.Club]{seq: existing.seq, val: *club}
	return nil
}

func (t clubTable) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.s.clubs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	club := r.val
	return &club, nil
}

func (t clubTable) List(ctx context.Context) ([]domain.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sorted(t.s.clubs, nil, func(a, b domain.Club) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	}, newestTiesFirst), nil
}

func (t clubTable) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.clubs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.s.clubs, id)
	return nil
}

type eventTable struct{ s *Store }

func (t eventTable) Create(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id, seq, now := t.s.next()
	event.ID, event.CreatedAt, event.UpdatedAt = id, now, now
	event.Keywords = slices.Clone(event.Keywords)
	if event.Keywords == nil {
		event.Keywords = []string{}
	}
	t.s.events[id] = row[domain.Event]{seq: seq, val: *event}
	return nil
}

func (t eventTable) Update(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	existing, ok := t.s.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}
	event.CreatedAt = existing.val.CreatedAt
	event.UpdatedAt = t.s.now()
	stored := *event
	stored.Keywords = slices.Clone(event.Keywords)
	t.s.events[event.ID] = row[domain.Event]{seq: existing.seq, val: stored}
	return nil
}

func (t eventTable) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	event := r.val
	event.Keywords = slices.Clone(event.Keywords)
	return &event, nil
}

func (t eventTable) List(ctx context.Context) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	list := sorted(t.s.events, nil, func(a, b domain.Event) int {
		return a.Date.Compare(b.Date)
	}, oldestTiesFirst)
	for i := range list {
		list[i].Keywords = slices.Clone(list[i].Keywords)
	}
	return list, nil
}

func (t eventTable) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.s.events, id)
	return nil
}
