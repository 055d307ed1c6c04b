package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/au-connect/internal/domain"
)

// RegistrationRepository persists the event registration join table.
// Create reports ErrConflict for a duplicate (user, event) pair.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	Find(ctx context.Context, userID, eventID string) (*domain.Registration, error)
	Delete(ctx context.Context, key domain.RegistrationKey) error
	List(ctx context.Context) ([]domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	DeleteByEvent(ctx context.Context, eventID string) (int, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository instantiates repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `id, user_id, event_id, registered_at, created_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (user_id, event_id)
        VALUES ($1,$2)
        ON CONFLICT (user_id, event_id) DO NOTHING
        RETURNING id, registered_at, created_at`
	err := r.pool.QueryRow(ctx, query, reg.UserID, reg.EventID).
		Scan(&reg.ID, &reg.RegisteredAt, &reg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return mapInsertError(err)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id=$1`
	return r.queryOne(ctx, query, id)
}

func (r *registrationRepository) Find(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id=$1 AND event_id=$2`
	return r.queryOne(ctx, query, userID, eventID)
}

func (r *registrationRepository) Delete(ctx context.Context, key domain.RegistrationKey) error {
	if key.ByID() {
		return rowsAffected(r.pool.Exec(ctx, `DELETE FROM registrations WHERE id=$1`, key.ID))
	}
	return rowsAffected(r.pool.Exec(ctx,
		`DELETE FROM registrations WHERE user_id=$1 AND event_id=$2`, key.UserID, key.EventID))
}

func (r *registrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id=$1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, eventID)
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *registrationRepository) DeleteByEvent(ctx context.Context, eventID string) (int, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE event_id=$1`, eventID)
	if err != nil {
		return 0, malformedAsEmpty(err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *registrationRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Registration, error) {
	var reg domain.Registration
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt, &reg.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &reg, nil
}

func (r *registrationRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if mapped := malformedAsEmpty(err); mapped != nil {
			return nil, mapped
		}
		return []domain.Registration{}, nil
	}
	defer rows.Close()

	result := []domain.Registration{}
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt, &reg.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		result = append(result, reg)
	}
	if err := rows.Err(); err != nil {
		if mapped := malformedAsEmpty(err); mapped != nil {
			return nil, mapped
		}
		return []domain.Registration{}, nil
	}
	return result, nil
}
