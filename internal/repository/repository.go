package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by every store driver.
var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record already exists")
	ErrUnavailable = errors.New("store unavailable")
	ErrInvalidID   = errors.New("malformed identifier")
)

// Postgres SQLSTATE codes the drivers translate.
const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgForeignKeyViolation = "23503"
)

// Store bundles the repositories of one driver.
type Store struct {
	Users         UserRepository
	Clubs         ClubRepository
	Events        EventRepository
	Memberships   MembershipRepository
	Registrations RegistrationRepository
	Pinger        Pinger
}

// Pinger checks store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.Pinger == nil {
		return nil
	}
	return s.Pinger.Ping(ctx)
}

// mapPgError normalizes pgx failures into the sentinel errors.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgInvalidTextRepr, pgForeignKeyViolation:
			// Malformed or dangling ids never match a row.
			return ErrNotFound
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// mapInsertError is mapPgError for inserts: a malformed id in the new row is
// the caller's input error, not a missing record.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepr {
		return fmt.Errorf("%w: %s", ErrInvalidID, pgErr.Message)
	}
	return mapPgError(err)
}

// malformedAsEmpty treats an id that can never match (ErrNotFound) as an
// empty result for list and bulk delete queries.
func malformedAsEmpty(err error) error {
	mapped := mapPgError(err)
	if errors.Is(mapped, ErrNotFound) {
		return nil
	}
	return mapped
}

// rowsAffected turns a zero-row write into ErrNotFound.
func rowsAffected(cmd pgconn.CommandTag, err error) error {
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NewPostgresStore wires every repository onto one pgx pool.
func NewPostgresStore(pool *pgxpool.Pool, pinger Pinger) *Store {
	return &Store{
		Users:         NewUserRepository(pool),
		Clubs:         NewClubRepository(pool),
		Events:        NewEventRepository(pool),
		Memberships:   NewMembershipRepository(pool),
		Registrations: NewRegistrationRepository(pool),
		Pinger:        pinger,
	}
}
