package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/au-connect/internal/domain"
)

// EventRepository manages event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, description, date, location, club_id, keywords, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, date, location, club_id, keywords)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.ClubID,
		nonNil(event.Keywords),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	return mapPgError(err)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, description=$2, date=$3, location=$4, club_id=$5, keywords=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.ClubID,
		nonNil(event.Keywords),
		event.ID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	return mapPgError(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.ClubID,
		&event.Keywords,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Event{}
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.ClubID,
			&event.Keywords,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, mapPgError(err)
		}
		result = append(result, event)
	}
	return result, mapPgError(rows.Err())
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return rowsAffected(r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id))
}
