package redis

import (
	"context"
	"math"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	// GeoKey is the sorted set holding active post coordinates.
	GeoKey = "posts:geo"

	// Redis refuses coordinates outside this latitude band.
	maxGeoLatitude = 85.05112878

	// Redis measures with a 6372.8 km sphere; widen the search so the exact
	// Haversine pass never loses a boundary post.
	searchSlack  = 1.01
	searchPadKm  = 0.01
	kmPerDegree  = 111.2
	rebuildBatch = 500
)

// GeoIndexRedis keeps a GEO set of active posts and answers nearby queries from it.
type GeoIndexRedis struct {
	Client   *redis.Client
	Posts    postPort.PostRepository
	Fallback feedPort.NearbyFinder
	Key      string
	Logger   *zap.Logger
}

func NewGeoIndexRedis(client *redis.Client, posts postPort.PostRepository, fallback feedPort.NearbyFinder, logger *zap.Logger) *GeoIndexRedis {
	return &GeoIndexRedis{
		Client:   client,
		Posts:    posts,
		Fallback: fallback,
		Key:      GeoKey,
		Logger:   logger,
	}
}

// Add indexes a post; posts beyond the Redis latitude band are left to the fallback.
func (r *GeoIndexRedis) Add(ctx context.Context, p *post.Post) error {
	if !indexable(p.Latitude) {
		return nil
	}
	return r.Client.GeoAdd(ctx, r.Key, location(p)).Err()
}

func (r *GeoIndexRedis) Remove(ctx context.Context, id uuid.UUID) error {
	return r.Client.ZRem(ctx, r.Key, id.String()).Err()
}

// Rebuild replaces the index content with the given posts and returns how many were indexed.
func (r *GeoIndexRedis) Rebuild(ctx context.Context, posts []*post.Post) (int, error) {
	pipe := r.Client.TxPipeline()
	pipe.Del(ctx, r.Key)

	indexed := 0
	batch := make([]*redis.GeoLocation, 0, rebuildBatch)
	for _, p := range posts {
		if !indexable(p.Latitude) {
			continue
		}
		batch = append(batch, location(p))
		indexed++
		if len(batch) == rebuildBatch {
			pipe.GeoAdd(ctx, r.Key, batch...)
			batch = make([]*redis.GeoLocation, 0, rebuildBatch)
		}
	}
	if len(batch) > 0 {
		pipe.GeoAdd(ctx, r.Key, batch...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return indexed, nil
}

func (r *GeoIndexRedis) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*feed.NearbyPost, error) {
	if !indexable(math.Abs(lat) + radiusKm/kmPerDegree) {
		return r.Fallback.FindNearby(ctx, lat, lng, radiusKm)
	}

	locations, err := r.Client.GeoRadius(ctx, r.Key, lng, lat, &redis.GeoRadiusQuery{
		Radius: radiusKm*searchSlack + searchPadKm,
		Unit:   "km",
	}).Result()
	if err != nil {
		r.Logger.Warn("⚠️ GEO lookup failed, scanning posts instead", zap.Error(err))
		return r.Fallback.FindNearby(ctx, lat, lng, radiusKm)
	}

	ids := make([]uuid.UUID, 0, len(locations))
	for _, loc := range locations {
		id, err := uuid.FromString(loc.Name)
		if err != nil {
			r.Logger.Warn("⚠️ Invalid member in GEO index", zap.String("member", loc.Name))
			continue
		}
		ids = append(ids, id)
	}

	posts, err := r.Posts.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return feed.WithinRadius(posts, lat, lng, radiusKm), nil
}

func location(p *post.Post) *redis.GeoLocation {
	return &redis.GeoLocation{
		Name:      p.ID.String(),
		Longitude: p.Longitude,
		Latitude:  p.Latitude,
	}
}

func indexable(lat float64) bool {
	return math.Abs(lat) <= maxGeoLatitude
}
