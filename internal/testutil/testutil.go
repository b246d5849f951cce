// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/config"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated SQLite database under t.TempDir().
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=off&_busy_timeout=5000"
	db, err := config.OpenDB("sqlite", dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

func Logger() *zap.Logger { return zap.NewNop() }

// CreateUser inserts an active user. The password hash is a placeholder;
// use the user service when a login is needed.
func CreateUser(t *testing.T, db *gorm.DB, name string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Email:    uuid.Must(uuid.NewV4()).String()[:8] + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// PostOption tweaks a fixture post before insert.
type PostOption func(*post.Post)

func At(lat, lng float64) PostOption {
	return func(p *post.Post) { p.Latitude, p.Longitude = lat, lng }
}

func CreatedAt(ts time.Time) PostOption {
	return func(p *post.Post) { p.CreatedAt = ts }
}

func Inactive() PostOption {
	return func(p *post.Post) { p.IsActive = false }
}

func Titled(title string) PostOption {
	return func(p *post.Post) { p.Title = title }
}

// CreatePost inserts an active post owned by owner at (0, 0) unless overridden.
func CreatePost(t *testing.T, db *gorm.DB, owner *user.User, opts ...PostOption) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       "Mirador",
		Description: "Vista al volcán",
		Phone:       "0999999999",
		IsActive:    true,
		UserID:      owner.ID,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// ReloadPost reads the post row again, active or not.
func ReloadPost(t *testing.T, db *gorm.DB, id uuid.UUID) *post.Post {
	t.Helper()
	var p post.Post
	require.NoError(t, db.Where("id = ?", id).First(&p).Error)
	return &p
}
