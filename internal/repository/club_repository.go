package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/au-connect/internal/domain"
)

// ClubRepository manages club persistence.
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	Update(ctx context.Context, club *domain.Club) error
	GetByID(ctx context.Context, id string) (*domain.Club, error)
	List(ctx context.Context) ([]domain.Club, error)
	Delete(ctx context.Context, id string) error
}

type clubRepository struct {
	pool *pgxpool.Pool
}

// NewClubRepository builds the repository.
func NewClubRepository(pool *pgxpool.Pool) ClubRepository {
	return &clubRepository{pool: pool}
}

func (r *clubRepository) Create(ctx context.Context, club *domain.Club) error {
	const query = `
        INSERT INTO clubs (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		club.Name,
		club.Description,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	return mapPgError(err)
}

func (r *clubRepository) Update(ctx context.Context, club *domain.Club) error {
	const query = `
        UPDATE clubs SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		club.Name,
		club.Description,
		club.ID,
	).Scan(&club.CreatedAt, &club.UpdatedAt)
	return mapPgError(err)
}

func (r *clubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM clubs WHERE id=$1`
	var club domain.Club
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&club.CreatedAt,
		&club.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &club, nil
}

func (r *clubRepository) List(ctx context.Context) ([]domain.Club, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM clubs ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Club{}
	for rows.Next() {
		var club domain.Club
		if err := rows.Scan(&club.ID, &club.Name, &club.Description, &club.CreatedAt, &club.UpdatedAt); err != nil {
			return nil, mapPgError(err)
		}
		result = append(result, club)
	}
	return result, mapPgError(rows.Err())
}

func (r *clubRepository) Delete(ctx context.Context, id string) error {
	return rowsAffected(r.pool.Exec(ctx, `DELETE FROM clubs WHERE id=$1`, id))
}
