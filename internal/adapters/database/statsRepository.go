package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/like"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"gorm.io/gorm"
)

// StatsRepositoryDatabase answers the admin dashboard queries.
type StatsRepositoryDatabase struct {
	db *gorm.DB
}

func NewStatsRepositoryDatabase(db *gorm.DB) *StatsRepositoryDatabase {
	return &StatsRepositoryDatabase{db: db}
}

func (repo *StatsRepositoryDatabase) CountUsers(ctx context.Context) (int64, error) {
	return repo.count(ctx, &user.User{})
}

func (repo *StatsRepositoryDatabase) CountPosts(ctx context.Context) (int64, error) {
	return repo.count(ctx, &post.Post{})
}

func (repo *StatsRepositoryDatabase) CountComments(ctx context.Context) (int64, error) {
	return repo.count(ctx, &comment.Comment{})
}

func (repo *StatsRepositoryDatabase) CountLikes(ctx context.Context) (int64, error) {
	return repo.count(ctx, &like.Like{})
}

func (repo *StatsRepositoryDatabase) TopPostsByLikes(ctx context.Context, n int) ([]*post.Post, error) {
	posts := []*post.Post{}
	if err := repo.db.WithContext(ctx).
		Select("id", "title", "likes_count", "comments_count", "created_at").
		Where("is_active = ?", true).
		Order("likes_count DESC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(n).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *StatsRepositoryDatabase) count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}
