package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapPgError(t *testing.T) {
	t.Parallel()

	require.NoError(t, mapPgError(nil))
	require.ErrorIs(t, mapPgError(pgx.ErrNoRows), ErrNotFound)
	require.ErrorIs(t, mapPgError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "memberships_user_club_key"}
	err := mapPgError(unique)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorContains(t, err, "memberships_user_club_key")

	require.ErrorIs(t, mapPgError(&pgconn.PgError{Code: "22P02"}), ErrNotFound)

	outage := errors.New("dial tcp: connection refused")
	err = mapPgError(outage)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, outage)
}

func TestMapInsertError(t *testing.T) {
	t.Parallel()

	err := mapInsertError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "u1"`})
	require.ErrorIs(t, err, ErrInvalidID)
	require.NotErrorIs(t, err, ErrNotFound)

	require.NoError(t, mapInsertError(nil))
	require.ErrorIs(t, mapInsertError(&pgconn.PgError{Code: "23505"}), ErrConflict)
	require.ErrorIs(t, mapInsertError(errors.New("boom")), ErrUnavailable)
}

func TestMalformedAsEmpty(t *testing.T) {
	t.Parallel()

	require.NoError(t, malformedAsEmpty(&pgconn.PgError{Code: "22P02"}))
	require.ErrorIs(t, malformedAsEmpty(errors.New("boom")), ErrUnavailable)
}

func TestRowsAffected(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, rowsAffected(pgconn.NewCommandTag("DELETE 0"), nil), ErrNotFound)
	require.NoError(t, rowsAffected(pgconn.NewCommandTag("DELETE 1"), nil))
	require.ErrorIs(t, rowsAffected(pgconn.CommandTag{}, errors.New("boom")), ErrUnavailable)
}
