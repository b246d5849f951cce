package post

import (
	"context"
	"io"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	commentPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/comment"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository stores and loads posts. Every Find/List method skips soft-deleted rows.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	ListActive(ctx context.Context) ([]*post.Post, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*post.Post, error)
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ImageStore persists uploaded images and returns their public relative path.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Remove deletes an image by the path Save returned.
	Remove(ctx context.Context, path string) error
}

// GeoIndex mirrors active post coordinates into a spatial index.
type GeoIndex interface {
	Add(ctx context.Context, p *post.Post) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type CreatePostInput struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Phone       string
	Images      []string
}

// PostDTO is the post shape returned by the API.
type PostDTO struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Latitude      float64                   `json:"latitude"`
	Longitude     float64                   `json:"longitude"`
	Phone         string                    `json:"phone"`
	Images        []string                  `json:"images"`
	LikesCount    int                       `json:"likesCount"`
	CommentsCount int                       `json:"commentsCount"`
	IsActive      bool                      `json:"isActive"`
	UserID        string                    `json:"userId"`
	User          *userPort.UserSummaryDTO  `json:"user,omitempty"`
	Comments      []*commentPort.CommentDTO `json:"comments,omitempty"`
	Distance      *float64                  `json:"distance,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

func ToPostDTO(p *post.Post) *PostDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return &PostDTO{
		ID:            p.ID.String(),
		Title:         p.Title,
		Description:   p.Description,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Phone:         p.Phone,
		Images:        images,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		IsActive:      p.IsActive,
		UserID:        p.UserID.String(),
		User:          userPort.ToUserSummaryDTO(&p.User),
		CreatedAt:     p.CreatedAt,
	}
}

func ToPostDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, ToPostDTO(p))
	}
	return dtos
}
