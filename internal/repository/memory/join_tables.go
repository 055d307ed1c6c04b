package memory

import (
	"context"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
)

type membershipTable struct{ s *Store }

func (t membershipTable) Create(ctx context.Context, m *domain.Membership) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	key := pair{m.UserID, m.ClubID}
	if _, exists := t.s.membershipIdx[key]; exists {
		return repository.ErrConflict
	}
	id, seq, now := t.s.next()
	m.ID, m.CreatedAt = id, now
	if m.JoinDate.IsZero() {
		m.JoinDate = now
	}
	t.s.memberships[id] = row[domain.Membership]{seq: seq, val: *m}
	t.s.membershipIdx[key] = id
	return nil
}

func (t membershipTable) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.s.memberships[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m := r.val
	return &m, nil
}

func (t membershipTable) Find(ctx context.Context, userID, clubID string) (*domain.Membership, error) {
	t.s.mu.RLock()
	id, ok := t.s.membershipIdx[pair{userID, clubID}]
	t.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.GetByID(ctx, id)
}

func (t membershipTable) Delete(ctx context.Context, key domain.MembershipKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id := key.ID
	if !key.ByID() {
		id = t.s.membershipIdx[pair{key.UserID, key.ClubID}]
	}
	r, ok := t.s.memberships[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(t.s.memberships, id)
	delete(t.s.membershipIdx, pair{r.val.UserID, r.val.ClubID})
	return nil
}

func (t membershipTable) List(ctx context.Context) ([]domain.Membership, error) {
	return t.list(ctx, nil)
}

func (t membershipTable) ListByClub(ctx context.Context, clubID string) ([]domain.Membership, error) {
	return t.list(ctx, func(m domain.Membership) bool { return m.ClubID == clubID })
}

func (t membershipTable) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	return t.list(ctx, func(m domain.Membership) bool { return m.UserID == userID })
}

func (t membershipTable) list(ctx context.Context, keep func(domain.Membership) bool) ([]domain.Membership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sorted(t.s.memberships, keep, func(a, b domain.Membership) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	}, newestTiesFirst), nil
}

func (t membershipTable) DeleteByClub(ctx context.Context, clubID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	removed := 0
	for id, r := range t.s.memberships {
		if r.val.ClubID != clubID {
			continue
		}
		delete(t.s.memberships, id)
		delete(t.s.membershipIdx, pair{r.val.UserID, r.val.ClubID})
		removed++
	}
	return removed, nil
}

type registrationTable struct{ s *Store }

func (t registrationTable) Create(ctx context.Context, reg *domain.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	key := pair{reg.UserID, reg.EventID}
	if _, exists := t.s.registerIdx[key]; exists {
		return repository.ErrConflict
	}
	id, seq, now := t.s.next()
	reg.ID, reg.CreatedAt = id, now
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = now
	}
	t.s.registrations[id] = row[domain.Registration]{seq: seq, val: *reg}
	t.s.registerIdx[key] = id
	return nil
}

func (t registrationTable) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.s.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	reg := r.val
	return &reg, nil
}

func (t registrationTable) Find(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	t.s.mu.RLock()
	id, ok := t.s.registerIdx[pair{userID, eventID}]
	t.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.GetByID(ctx, id)
}

func (t registrationTable) Delete(ctx context.Context, key domain.RegistrationKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id := key.ID
	if !key.ByID() {
		id = t.s.registerIdx[pair{key.UserID, key.EventID}]
	}
	r, ok := t.s.registrations[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(t.s.registrations, id)
	delete(t.s.registerIdx, pair{r.val.UserID, r.val.EventID})
	return nil
}

func (t registrationTable) List(ctx context.Context) ([]domain.Registration, error) {
	return t.list(ctx, nil)
}

func (t registrationTable) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return t.list(ctx, func(r domain.Registration) bool { return r.EventID == eventID })
}

func (t registrationTable) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return t.list(ctx, func(r domain.Registration) bool { return r.UserID == userID })
}

func (t registrationTable) list(ctx context.Context, keep func(domain.Registration) bool) ([]domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sorted(t.s.registrations, keep, func(a, b domain.Registration) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	}, newestTiesFirst), nil
}

func (t registrationTable) DeleteByEvent(ctx context.Context, eventID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	removed := 0
	for id, r := range t.s.registrations {
		if r.val.EventID != eventID {
			continue
		}
		delete(t.s.registrations, id)
		delete(t.s.registerIdx, pair{r.val.UserID, r.val.EventID})
		removed++
	}
	return removed, nil
}
