package userapp

import (
	"testing"
	"time"

	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	key := []byte("secret")
	u := &userEntity.User{ID: uuid.Must(uuid.NewV4()), Role: userEntity.RoleAdmin}

	token, exp, err := GenerateToken(key, u, time.Hour, time.Now())
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	id, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, userEntity.RoleAdmin, id.Role)
}

func TestParseTokenRejects(t *testing.T) {
	key := []byte("secret")
	u := &userEntity.User{ID: uuid.Must(uuid.NewV4()), Role: userEntity.RoleClient}

	expired, _, err := GenerateToken(key, u, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.Error(t, err, "expired")

	valid, _, err := GenerateToken(key, u, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken([]byte("other"), valid)
	assert.Error(t, err, "wrong key")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		StandardClaims: jwt.StandardClaims{Subject: u.ID.String()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(key, none)
	assert.Error(t, err, "alg none")
}
