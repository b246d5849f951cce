package userapp

import (
	"errors"
	"fmt"
	"time"

	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
)

const tokenIssuer = "turismo"

// Claims is the JWT payload: Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// Identity is the caller extracted from a verified token.
type Identity struct {
	UserID uuid.UUID
	Role   userEntity.Role
}

// GenerateToken signs an HS256 token for u valid for ttl.
func GenerateToken(key []byte, u *userEntity.User, ttl time.Duration, now time.Time) (string, int64, error) {
	expiresAt := now.Add(ttl).Unix()
	claims := &Claims{
		Role: string(u.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", 0, err
	}
	return token, expiresAt, nil
}

// ParseToken verifies signature, algorithm and expiry.
func ParseToken(key []byte, tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	return &Identity{UserID: id, Role: userEntity.ParseRole(claims.Role)}, nil
}
