package follow

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"

	"github.com/gofrs/uuid"
)

// FollowRepository stores follow edges.
type FollowRepository interface {
	// Create yields apperr.ErrConflict when the edge already exists.
	Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error)
	// Delete yields apperr.ErrNotFound when there is no such edge.
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]*follow.Follow, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]*follow.Follow, error)
}

type FollowDTO struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToFollowDTO(f *follow.Follow) *FollowDTO {
	return &FollowDTO{
		ID:          f.ID.String(),
		FollowerID:  f.FollowerID.String(),
		FollowingID: f.FollowingID.String(),
		CreatedAt:   f.CreatedAt,
	}
}
