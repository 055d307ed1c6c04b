package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/events"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

func TestJoinThenIsMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")
	u1 := f.student(t)

	m := f.join(t, u1.ID, club.ID)
	assert.Equal(t, u1.ID, m.UserID)
	assert.False(t, m.JoinDate.IsZero())

	ok, err := f.coordinator.IsMember(ctx, u1.ID, club.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.memberships.Join(ctx, JoinInput{UserID: u1.ID, ClubID: club.ID})
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict), "got %v", err)

	list, err := f.memberships.ListByClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestJoinNormalizesIDs(t *testing.T) {
	f := newFixture(t)
	club := f.club(t, "Go")
	u1 := f.student(t)

	f.join(t, " "+u1.ID+" ", club.ID)
	_, err := f.memberships.Join(context.Background(), JoinInput{UserID: u1.ID, ClubID: club.ID})
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestJoinValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")

	_, err := f.memberships.Join(ctx, JoinInput{ClubID: club.ID})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	u1 := f.student(t)
	_, err = f.memberships.Join(ctx, JoinInput{UserID: u1.ID, ClubID: "5d0b8c6e-7a4c-4f43-9c5e-2f1b8d1f0a11"})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	_, err = f.memberships.Join(ctx, JoinInput{UserID: "u1", ClubID: club.ID})
	require.True(t, apperrors.Is(err, apperrors.CodeValidation), "got %v", err)
	assert.Equal(t, "invalid userId", apperrors.ToDomainError(err).Message)

	list, err := f.memberships.ListByClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLeaveTwiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")
	u1 := f.student(t)
	f.join(t, u1.ID, club.ID)

	require.NoError(t, f.memberships.Leave(ctx, u1.ID, club.ID))
	err := f.memberships.Leave(ctx, u1.ID, club.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound), "got %v", err)

	ok, err := f.coordinator.IsMember(ctx, u1.ID, club.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Rejoining after leaving is allowed.
	f.join(t, u1.ID, club.ID)
}

func TestRemoveByIDDecrementsCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")
	m1 := f.join(t, f.student(t).ID, club.ID)
	f.join(t, f.student(t).ID, club.ID)

	require.NoError(t, f.memberships.RemoveByID(ctx, m1.ID))

	counts, err := f.coordinator.MemberCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[club.ID])

	err = f.memberships.Remove(ctx, domain.MembershipKey{ID: m1.ID})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestRemoveByKeySharesPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")
	u1 := f.student(t)
	f.join(t, u1.ID, club.ID)

	require.NoError(t, f.memberships.Remove(ctx, domain.MembershipKey{UserID: u1.ID, ClubID: club.ID}))
	assert.Equal(t, []events.EventType{events.EventMembershipJoined, events.EventMembershipRemoved}, f.log.snapshot())
}

func TestConcurrentJoinsYieldOneMembership(t *testing.T) {
	f := newFixture(t)
	club := f.club(t, "Chess")
	u1 := f.student(t)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 24; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.memberships.Join(context.Background(), JoinInput{UserID: u1.ID, ClubID: club.ID})
			switch {
			case err == nil:
				successes.Add(1)
			case apperrors.Is(err, apperrors.CodeConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, 23, conflicts.Load())
}

func TestLedgerMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Chess")
	u1 := f.student(t)
	f.join(t, u1.ID, club.ID)
	_, _ = f.memberships.Join(ctx, JoinInput{UserID: u1.ID, ClubID: club.ID})

	assert.Contains(t, mustGather(t, f), `outcome="CONFLICT"`)
	series, err := testutil.GatherAndCount(f.metrics.Registry(), "test_ledger_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func mustGather(t *testing.T, f *fixture) string {
	t.Helper()
	families, err := f.metrics.Registry().Gather()
	require.NoError(t, err)
	var out string
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			for _, l := range m.GetLabel() {
				out += l.GetName() + `="` + l.GetValue() + `" `
			}
		}
	}
	return out
}
