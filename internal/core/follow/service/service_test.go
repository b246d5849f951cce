package followapp

import (
	"context"
	"testing"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	followEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	"github.com/kevinseya/app-turismo-dnavarro/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRules(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewFollowService(dbadapter.NewFollowRepositoryDatabase(db), dbadapter.NewUserRepositoryDatabase(db), testutil.Logger())
	a := testutil.CreateUser(t, db, "a", userEntity.RoleClient)
	b := testutil.CreateUser(t, db, "b", userEntity.RoleClient)

	_, err := svc.FollowUser(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.FollowUser(ctx, a.ID, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	f, err := svc.FollowUser(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID.String(), f.FollowerID)

	_, err = svc.FollowUser(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	ok, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	followers, err := svc.FollowersCount(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)
	following, err := svc.FollowingCount(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)

	list, err := svc.GetFollowersByUserID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID.String(), list[0].FollowerID)

	require.NoError(t, svc.UnfollowUser(ctx, a.ID, b.ID))
	ok, err = svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.UnfollowUser(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUniqueIndexBacksConflict(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := dbadapter.NewFollowRepositoryDatabase(db)
	a := testutil.CreateUser(t, db, "a", userEntity.RoleClient)
	b := testutil.CreateUser(t, db, "b", userEntity.RoleClient)

	svc := NewFollowService(repo, dbadapter.NewUserRepositoryDatabase(db), testutil.Logger())
	_, err := svc.FollowUser(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// bypass the Exists check
	_, err = repo.Create(ctx, newEdge(a.ID, b.ID))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func newEdge(follower, following uuid.UUID) *followEntity.Follow {
	return &followEntity.Follow{ID: uuid.Must(uuid.NewV4()), FollowerID: follower, FollowingID: following}
}
