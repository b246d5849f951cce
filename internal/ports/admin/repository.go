package admin

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
)

// StatsRepository answers the dashboard's aggregate queries.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	CountLikes(ctx context.Context) (int64, error)
	// TopPostsByLikes returns active posts by likes_count desc, older first on ties.
	TopPostsByLikes(ctx context.Context, n int) ([]*post.Post, error)
}

type TopPostDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
}

type DashboardDTO struct {
	TotalUsers    int64         `json:"totalUsers"`
	TotalPosts    int64         `json:"totalPosts"`
	TotalComments int64         `json:"totalComments"`
	TotalLikes    int64         `json:"totalLikes"`
	TopPosts      []*TopPostDTO `json:"topPosts"`
}
