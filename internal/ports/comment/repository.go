package comment

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gofrs/uuid"
)

// CommentRepository keeps Post.CommentsCount in step with active comments.
type CommentRepository interface {
	// Create inserts the comment and increments the post counter in one transaction.
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	ListActiveByPost(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
	ListActiveByPosts(ctx context.Context, postIDs []uuid.UUID) ([]*comment.Comment, error)
	// SoftDelete deactivates the comment and decrements the post counter (floored at 0) in one transaction.
	SoftDelete(ctx context.Context, c *comment.Comment) error
}

type CreateCommentInput struct {
	Content string
	Rating  int
}

type CommentDTO struct {
	ID        string                   `json:"id"`
	Content   string                   `json:"content"`
	Rating    int                      `json:"rating"`
	UserID    string                   `json:"userId"`
	PostID    string                   `json:"postId"`
	User      *userPort.UserSummaryDTO `json:"user,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
}

func ToCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		Rating:    c.Rating,
		UserID:    c.UserID.String(),
		PostID:    c.PostID.String(),
		User:      userPort.ToUserSummaryDTO(&c.User),
		CreatedAt: c.CreatedAt,
	}
}

func ToCommentDTOs(comments []*comment.Comment) []*CommentDTO {
	dtos := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, ToCommentDTO(c))
	}
	return dtos
}
