package service

import (
	"context"
	"strings"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// ClubService manages club records. Deletion goes through the Coordinator.
type ClubService struct {
	clubs repository.ClubRepository
}

// ClubInput carries the writable club fields.
type ClubInput struct {
	Name        string
	Description string
}

// NewClubService builds the service.
func NewClubService(clubs repository.ClubRepository) *ClubService {
	return &ClubService{clubs: clubs}
}

func (in ClubInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	return nil
}

// Create stores a new club.
func (s *ClubService) Create(ctx context.Context, input ClubInput) (*domain.Club, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	club := &domain.Club{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, storeError("club", err)
	}
	return club, nil
}

// Update replaces the writable fields of a club.
func (s *ClubService) Update(ctx context.Context, clubID string, input ClubInput) (*domain.Club, error) {
	id := domain.NormalizeID(clubID)
	if id == "" {
		return nil, apperrors.NewValidationError("Missing club id", nil)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	club := &domain.Club{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.clubs.Update(ctx, club); err != nil {
		return nil, storeError("club", err)
	}
	return club, nil
}

// Get returns one club.
func (s *ClubService) Get(ctx context.Context, clubID string) (*domain.Club, error) {
	club, err := s.clubs.GetByID(ctx, domain.NormalizeID(clubID))
	if err != nil {
		return nil, storeError("club", err)
	}
	return club, nil
}

// List returns all clubs, newest first.
func (s *ClubService) List(ctx context.Context) ([]domain.Club, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, storeError("club", err)
	}
	return clubs, nil
}
