package dto

import (
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToInput converts the payload into the service input.
func (r UserRegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ProfileUpdateRequest payload for PUT /users/update.
type ProfileUpdateRequest struct {
	UserID    string   `json:"userId"`
	Major     string   `json:"major"`
	Interests []string `json:"interests"`
}

// ToInput converts the payload into the service input.
func (r ProfileUpdateRequest) ToInput() service.ProfileInput {
	return service.ProfileInput{UserID: r.UserID, Major: r.Major, Interests: r.Interests}
}

// UserResponse is the public view of a user. The password hash never leaves
// the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Major     string    `json:"major"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Major:     u.Major,
		Interests: interests,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
