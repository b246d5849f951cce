package user

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository stores and loads users.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*user.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role user.Role) (*user.User, error)
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expiresAt"`
	User        *UserDTO `json:"user"`
}

type UserDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	ProfileImage *string   `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProfileDTO is a user as seen by another user.
type ProfileDTO struct {
	UserDTO
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
	IsFollowing    *bool `json:"isFollowing,omitempty"`
}

// UserSummaryDTO is the owner/author projection embedded in posts and comments.
type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// ToUserSummaryDTO returns nil when the relation was not loaded.
func ToUserSummaryDTO(u *user.User) *UserSummaryDTO {
	if u == nil || u.ID == uuid.Nil {
		return nil
	}
	return &UserSummaryDTO{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}
