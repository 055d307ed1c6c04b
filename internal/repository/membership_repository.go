package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/au-connect/internal/domain"
)

// MembershipRepository persists the club membership join table.
//
// Create must reject a second row for the same (user, club) pair with
// ErrConflict at insert time; callers rely on it as the only uniqueness guard.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	GetByID(ctx context.Context, id string) (*domain.Membership, error)
	Find(ctx context.Context, userID, clubID string) (*domain.Membership, error)
	Delete(ctx context.Context, key domain.MembershipKey) error
	List(ctx context.Context) ([]domain.Membership, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Membership, error)
	DeleteByClub(ctx context.Context, clubID string) (int, error)
}

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository instantiates repository.
func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &membershipRepository{pool: pool}
}

const membershipColumns = `id, user_id, club_id, student_name, student_id, major, reason, join_date, created_at`

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	// ON CONFLICT DO NOTHING keeps the unique violation out of the server log;
	// an empty RETURNING set means the pair already exists.
	const query = `
        INSERT INTO memberships (user_id, club_id, student_name, student_id, major, reason)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (user_id, club_id) DO NOTHING
        RETURNING id, join_date, created_at`
	err := r.pool.QueryRow(ctx, query,
		m.UserID,
		m.ClubID,
		m.StudentName,
		m.StudentID,
		m.Major,
		m.Reason,
	).Scan(&m.ID, &m.JoinDate, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return mapInsertError(err)
}

func (r *membershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id=$1`
	return r.queryOne(ctx, query, id)
}

func (r *membershipRepository) Find(ctx context.Context, userID, clubID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id=$1 AND club_id=$2`
	return r.queryOne(ctx, query, userID, clubID)
}

func (r *membershipRepository) Delete(ctx context.Context, key domain.MembershipKey) error {
	if key.ByID() {
		return rowsAffected(r.pool.Exec(ctx, `DELETE FROM memberships WHERE id=$1`, key.ID))
	}
	return rowsAffected(r.pool.Exec(ctx,
		`DELETE FROM memberships WHERE user_id=$1 AND club_id=$2`, key.UserID, key.ClubID))
}

func (r *membershipRepository) List(ctx context.Context) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *membershipRepository) ListByClub(ctx context.Context, clubID string) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE club_id=$1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, clubID)
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *membershipRepository) DeleteByClub(ctx context.Context, clubID string) (int, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM memberships WHERE club_id=$1`, clubID)
	if err != nil {
		return 0, malformedAsEmpty(err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *membershipRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Membership, error) {
	var m domain.Membership
	if err := scanMembership(r.pool.QueryRow(ctx, query, args...), &m); err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (r *membershipRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Membership, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if mapped := malformedAsEmpty(err); mapped != nil {
			return nil, mapped
		}
		return []domain.Membership{}, nil
	}
	defer rows.Close()

	result := []domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		if err := scanMembership(rows, &m); err != nil {
			return nil, mapPgError(err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		if mapped := malformedAsEmpty(err); mapped != nil {
			return nil, mapped
		}
		return []domain.Membership{}, nil
	}
	return result, nil
}

func scanMembership(row pgx.Row, m *domain.Membership) error {
	return row.Scan(
		&m.ID,
		&m.UserID,
		&m.ClubID,
		&m.StudentName,
		&m.StudentID,
		&m.Major,
		&m.Reason,
		&m.JoinDate,
		&m.CreatedAt,
	)
}
