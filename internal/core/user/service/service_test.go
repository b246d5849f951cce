package userapp

import (
	"context"
	"testing"
	"time"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	followEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	"github.com/kevinseya/app-turismo-dnavarro/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *UserService {
	db := testutil.NewTestDB(t)
	return NewUserService(
		dbadapter.NewUserRepositoryDatabase(db),
		dbadapter.NewFollowRepositoryDatabase(db),
		[]byte("test-secret"),
		24*time.Hour,
		testutil.Logger(),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.RegisterUser(ctx, "Ana", "Ana@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, string(userEntity.RoleClient), u.Role)
	assert.True(t, u.IsActive)

	res, err := svc.LoginUser(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, u.ID, res.User.ID)

	id, err := svc.VerifyToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID.String())
	assert.Equal(t, userEntity.RoleClient, id.Role)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	cases := []struct {
		name, email, password string
	}{
		{"", "a@example.com", "secret1"},
		{"Ana", "not-an-email", "secret1"},
		{"Ana", "a@example.com", "123"},
	}
	for _, tc := range cases {
		_, err := svc.RegisterUser(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", tc)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.RegisterUser(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "Otra", "ANA@example.com", "secret2")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.RegisterUser(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.LoginUser(ctx, "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.LoginUser(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.SetActive(ctx, uuid.FromStringOrNil(u.ID), false)
	require.NoError(t, err)
	_, err = svc.LoginUser(ctx, "ana@example.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestChangeRoleCoercesUnknownValues(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.RegisterUser(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	id := uuid.FromStringOrNil(u.ID)

	got, err := svc.ChangeRole(ctx, id, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", got.Role)

	// role names are case sensitive
	got, err = svc.ChangeRole(ctx, id, "admin")
	require.NoError(t, err)
	assert.Equal(t, "CLIENT", got.Role)

	_, err = svc.ChangeRole(ctx, id, "ADMIN")
	require.NoError(t, err)
	got, err = svc.ChangeRole(ctx, id, "ROOT")
	require.NoError(t, err)
	assert.Equal(t, "CLIENT", got.Role)

	_, err = svc.ChangeRole(ctx, uuid.Must(uuid.NewV4()), "ADMIN")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a, err := svc.RegisterUser(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	b, err := svc.RegisterUser(ctx, "Beto", "beto@example.com", "secret1")
	require.NoError(t, err)
	aID, bID := uuid.FromStringOrNil(a.ID), uuid.FromStringOrNil(b.ID)

	followRepo := svc.FollowRepository
	_, err = followRepo.Create(ctx, newFollow(aID, bID))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, aID, bID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.EqualValues(t, 0, profile.FollowingCount)
	require.NotNil(t, profile.IsFollowing)
	assert.True(t, *profile.IsFollowing)

	self, err := svc.GetProfile(ctx, aID, aID)
	require.NoError(t, err)
	assert.Nil(t, self.IsFollowing)
	assert.EqualValues(t, 1, self.FollowingCount)

	_, err = svc.GetProfile(ctx, aID, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func newFollow(follower, following uuid.UUID) *followEntity.Follow {
	return &followEntity.Follow{ID: uuid.Must(uuid.NewV4()), FollowerID: follower, FollowingID: following}
}
