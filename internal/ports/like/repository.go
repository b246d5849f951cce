package like

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/like"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gofrs/uuid"
)

// LikeRepository keeps Post.LikesCount equal to the number of like rows.
type LikeRepository interface {
	Find(ctx context.Context, userID, postID uuid.UUID) (*like.Like, error)
	// Create inserts the like and increments the counter in one transaction and
	// returns the updated post. A duplicate (user, post) pair yields apperr.ErrConflict.
	Create(ctx context.Context, l *like.Like) (*like.Like, *post.Post, error)
	// Delete removes the like and decrements the counter in one transaction.
	Delete(ctx context.Context, userID, postID uuid.UUID) (*like.Like, *post.Post, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

type LikeDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeResultDTO is the like (or removed like) together with the post after the change.
type LikeResultDTO struct {
	Like *LikeDTO          `json:"like"`
	Post *postPort.PostDTO `json:"post"`
}

func ToLikeResultDTO(l *like.Like, p *post.Post) *LikeResultDTO {
	return &LikeResultDTO{
		Like: &LikeDTO{
			ID:        l.ID.String(),
			UserID:    l.UserID.String(),
			PostID:    l.PostID.String(),
			CreatedAt: l.CreatedAt,
		},
		Post: postPort.ToPostDTO(p),
	}
}
