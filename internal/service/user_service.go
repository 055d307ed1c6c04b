package service

import (
	"context"
	"strings"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// UserService exposes profile reads and profile setup.
type UserService struct {
	users repository.UserRepository
}

// ProfileInput carries the mutable profile fields.
type ProfileInput struct {
	UserID    string
	Major     string
	Interests []string
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	id := domain.NormalizeID(userID)
	if id == "" {
		return nil, apperrors.NewValidationError("Missing user id", nil)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}

// UpdateProfile sets the major and interests of a user. Students may only
// update their own profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, input ProfileInput) (*domain.User, error) {
	id := domain.NormalizeID(input.UserID)
	if id == "" {
		return nil, apperrors.NewValidationError("Missing userId", nil)
	}
	if !actor.CanActFor(id) {
		return nil, apperrors.NewForbidden("cannot update another user's profile")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}
	user.Major = strings.TrimSpace(input.Major)
	user.Interests = dedupe(input.Interests)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}

// dedupe trims values and drops blanks and repeats, keeping first appearance.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
