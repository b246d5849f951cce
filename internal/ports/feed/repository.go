package feed

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"

	"github.com/gofrs/uuid"
)

// FeedRepository reads the following feed.
type FeedRepository interface {
	// FollowingFeed returns active posts of users followed by userID, newest first.
	FollowingFeed(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*post.Post, error)
}

// NearbyFinder returns every active post within radiusKm of a point, nearest first.
// Implementations must agree with feed.WithinRadius, boundary included.
type NearbyFinder interface {
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*feed.NearbyPost, error)
}

type NearbyQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Page     int
	Limit    int
}
