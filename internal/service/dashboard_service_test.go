package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/au-connect/internal/domain"
)

func TestStudentDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chess := f.club(t, "Chess")
	golang := f.club(t, "Go")
	event := f.event(t, "Open night", chess.ID)
	u1 := f.student(t)
	f.join(t, u1.ID, chess.ID)
	_, err := f.registrations.Register(ctx, u1.ID, event.ID)
	require.NoError(t, err)

	dash, err := f.dashboard.Student(ctx, domain.Actor{UserID: u1.ID, Role: domain.RoleStudent})
	require.NoError(t, err)

	assert.Equal(t, u1.ID, dash.User.ID)
	require.Len(t, dash.JoinedClubs, 1)
	assert.Equal(t, chess.ID, dash.JoinedClubs[0].ID)
	assert.Equal(t, 1, dash.JoinedClubs[0].MemberCount)
	require.Len(t, dash.AvailableClubs, 1)
	assert.Equal(t, golang.ID, dash.AvailableClubs[0].ID)
	require.Len(t, dash.Events, 1)
	assert.True(t, dash.Events[0].IsRegistered)
	assert.Equal(t, 1, dash.Events[0].RegistrationCount)
}

func TestClubDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chess := f.club(t, "Chess")
	u1, u2 := f.student(t), f.student(t)
	f.join(t, u1.ID, chess.ID)

	view, err := f.dashboard.ClubDetail(ctx, domain.Actor{UserID: u1.ID, Role: domain.RoleStudent}, chess.ID)
	require.NoError(t, err)
	assert.True(t, view.IsMember)
	assert.Equal(t, 1, view.MemberCount)

	view, err = f.dashboard.ClubDetail(ctx, domain.Actor{UserID: u2.ID, Role: domain.RoleStudent}, chess.ID)
	require.NoError(t, err)
	assert.False(t, view.IsMember)
}

func TestAdminOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c1, c2 := f.club(t, "C1"), f.club(t, "C2")
	e1 := f.event(t, "E1", c1.ID)
	u1, u2 := f.student(t), f.student(t)
	f.join(t, u1.ID, c1.ID)
	f.join(t, u2.ID, c1.ID)
	f.join(t, u1.ID, c2.ID)
	_, err := f.registrations.Register(ctx, u2.ID, e1.ID)
	require.NoError(t, err)

	overview, err := f.dashboard.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.TotalMembers)
	assert.Equal(t, 1, overview.TotalRegistrations)
	require.Len(t, overview.Clubs, 2)
	// Clubs are newest first.
	assert.Equal(t, c2.ID, overview.Clubs[0].ID)
	assert.Equal(t, 1, overview.Clubs[0].MemberCount)
	assert.Equal(t, 2, overview.Clubs[1].MemberCount)
}
