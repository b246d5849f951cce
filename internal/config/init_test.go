package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "file.db")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"APP_ENV", "APP_PORT", "DB_DRIVER", "NEARBY_INDEX", "BATCH_SIZE", "PUSH_POLL_INTERVAL", "UPLOAD_DIR", "TOKEN_TTL_HOURS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "scan", cfg.NearbyIndex)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.PushPollInterval)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("NEARBY_INDEX", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("PUSH_POLL_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "redis", cfg.NearbyIndex)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.PushPollInterval)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing dsn":        {"DB_DSN": ""},
		"missing jwt secret": {"JWT_SECRET": ""},
		"unknown driver":     {"DB_DRIVER": "oracle"},
		"unknown index":      {"NEARBY_INDEX": "rtree"},
		"redis without addr": {"NEARBY_INDEX": "redis", "REDIS_ADDR": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("DB_DRIVER", "")
			t.Setenv("NEARBY_INDEX", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
