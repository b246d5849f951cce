package feedapp

import (
	"context"
	"math"
	"testing"
	"time"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"
	"github.com/kevinseya/app-turismo-dnavarro/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*FeedService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	repo := dbadapter.NewFeedRepositoryDatabase(db)
	return NewFeedService(repo, repo, testutil.Logger()), db
}

func follows(t *testing.T, db *gorm.DB, follower, following *userEntity.User) {
	t.Helper()
	require.NoError(t, db.Create(&follow.Follow{
		ID:          uuid.Must(uuid.NewV4()),
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error)
}

func TestGetFeedFollowedActivePostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	reader := testutil.CreateUser(t, db, "reader", userEntity.RoleClient)
	followed := testutil.CreateUser(t, db, "followed", userEntity.RoleClient)
	stranger := testutil.CreateUser(t, db, "stranger", userEntity.RoleClient)
	follows(t, db, reader, followed)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreatePost(t, db, followed, testutil.Titled("old"), testutil.CreatedAt(base))
	testutil.CreatePost(t, db, followed, testutil.Titled("new"), testutil.CreatedAt(base.Add(time.Hour)))
	testutil.CreatePost(t, db, followed, testutil.Titled("hidden"), testutil.Inactive(), testutil.CreatedAt(base.Add(2*time.Hour)))
	testutil.CreatePost(t, db, stranger, testutil.Titled("stranger"), testutil.CreatedAt(base.Add(3*time.Hour)))

	got, err := svc.GetFeed(ctx, reader.ID, 1, 20)
	require.NoError(t, err)
	var names []string
	for _, p := range got {
		names = append(names, p.Title)
	}
	assert.Equal(t, []string{"new", "old"}, names)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "followed", got[0].User.Name)

	page2, err := svc.GetFeed(ctx, reader.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "old", page2[0].Title)

	empty, err := svc.GetFeed(ctx, stranger.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetFeedValidatesPaging(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	id := uuid.Must(uuid.NewV4())

	huge := math.MaxInt/20 + 2
	for _, pl := range [][2]int{{0, 20}, {1, 0}, {1, feed.MaxLimit + 1}, {1 << 62, 20}, {1<<62 + 1, 20}, {huge, 20}} {
		_, err := svc.GetFeed(ctx, id, pl[0], pl[1])
		assert.ErrorIs(t, err, apperr.ErrValidation, "page=%d limit=%d", pl[0], pl[1])
	}
}

func TestGetNearbyFeed(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	owner := testutil.CreateUser(t, db, "owner", userEntity.RoleClient)

	testutil.CreatePost(t, db, owner, testutil.Titled("far"), testutil.At(1, 0))
	edge := testutil.CreatePost(t, db, owner, testutil.Titled("edge"), testutil.At(0.05, 0))
	testutil.CreatePost(t, db, owner, testutil.Titled("here"), testutil.At(0, 0))
	testutil.CreatePost(t, db, owner, testutil.Titled("gone"), testutil.At(0, 0), testutil.Inactive())

	radius := feed.DistanceKm(0, 0, edge.Latitude, edge.Longitude)
	got, err := svc.GetNearbyFeed(ctx, feedPort.NearbyQuery{Lat: 0, Lng: 0, RadiusKm: radius, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "here", got[0].Title)
	assert.Equal(t, "edge", got[1].Title)
	require.NotNil(t, got[1].Distance)
	assert.InDelta(t, radius, *got[1].Distance, 1e-9)

	second, err := svc.GetNearbyFeed(ctx, feedPort.NearbyQuery{Lat: 0, Lng: 0, RadiusKm: radius, Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "edge", second[0].Title)

	past, err := svc.GetNearbyFeed(ctx, feedPort.NearbyQuery{Lat: 0, Lng: 0, RadiusKm: radius, Page: 3, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, past)

	// a zero radius still matches posts exactly at the point
	exact, err := svc.GetNearbyFeed(ctx, feedPort.NearbyQuery{Lat: 0, Lng: 0, RadiusKm: 0, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "here", exact[0].Title)
	assert.Zero(t, *exact[0].Distance)

	lastPage := math.MaxInt/20 + 1
	far, err := svc.GetNearbyFeed(ctx, feedPort.NearbyQuery{Lat: 0, Lng: 0, RadiusKm: radius, Page: lastPage, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, far)
}

func TestGetNearbyFeedValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	for _, q := range []feedPort.NearbyQuery{
		{Lat: 91, Lng: 0, RadiusKm: 10, Page: 1, Limit: 20},
		{Lat: 0, Lng: -181, RadiusKm: 10, Page: 1, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: -1, Page: 1, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: math.NaN(), Page: 1, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: math.Inf(1), Page: 1, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: 10, Page: 0, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: 10, Page: 1 << 62, Limit: 20},
		{Lat: 0, Lng: 0, RadiusKm: 10, Page: 1<<62 + 1, Limit: 20},
	} {
		_, err := svc.GetNearbyFeed(ctx, q)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", q)
	}
}
