package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FeedRepositoryDatabase serves the following feed and the full-scan nearby search.
type FeedRepositoryDatabase struct {
	db *gorm.DB
}

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{db: db}
}

func (repo *FeedRepositoryDatabase) FollowingFeed(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*post.Post, error) {
	posts := []*post.Post{}
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN follows ON follows.following_id = posts.user_id").
		Where("follows.follower_id = ? AND posts.is_active = ?", userID, true).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindNearby loads every active post and filters in memory. O(N) per call;
// the Redis GEO finder narrows the candidate set for larger tables.
func (repo *FeedRepositoryDatabase) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*feed.NearbyPost, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return feed.WithinRadius(posts, lat, lng, radiusKm), nil
}
