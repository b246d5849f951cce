package feed

import (
	"math"
	"sort"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
)

// EarthRadiusKm is the mean radius used by the Haversine distance.
const EarthRadiusKm = 6371.0

const (
	DefaultPage     = 1
	DefaultLimit    = 20
	MaxLimit        = 100
	DefaultRadiusKm = 10.0
)

// NearbyPost is a post annotated with its distance from the query point.
type NearbyPost struct {
	Post       *post.Post
	DistanceKm float64
}

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// WithinRadius keeps the posts at distance <= radiusKm from (lat, lng), nearest first.
// Posts at the same distance keep their input order.
func WithinRadius(posts []*post.Post, lat, lng, radiusKm float64) []*NearbyPost {
	out := make([]*NearbyPost, 0, len(posts))
	for _, p := range posts {
		d := DistanceKm(lat, lng, p.Latitude, p.Longitude)
		if d <= radiusKm {
			out = append(out, &NearbyPost{Post: p, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// Page slices items the way an OFFSET/LIMIT query would. Pages past the end,
// however large, are empty.
func Page[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 || page-1 > len(items)/limit {
		return []T{}
	}
	skip := Offset(page, limit)
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
