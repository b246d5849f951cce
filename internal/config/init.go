package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration, read from the environment (and .env when present).
type Config struct {
	Env  string
	Port string

	DBDriver string // mysql, postgres or sqlite
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string

	NearbyIndex string // scan or redis

	BatchSize           int
	PushPollInterval    time.Duration
	FirebaseCredentials string
}

var AppConfig *Config

// LoadDotEnv loads .env (or the given files) into the process environment.
// It reports whether anything was loaded; a missing file is not an error.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		Port:                getEnv("APP_PORT", "3000"),
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBDSN:               os.Getenv("DB_DSN"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		NearbyIndex:         getEnv("NEARBY_INDEX", "scan"),
		BatchSize:           getEnvInt("BATCH_SIZE", 100),
		PushPollInterval:    getEnvDuration("PUSH_POLL_INTERVAL", time.Second),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, errors.New("DB_DRIVER must be one of mysql, postgres, sqlite")
	}
	switch cfg.NearbyIndex {
	case "scan":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, errors.New("NEARBY_INDEX=redis requires REDIS_ADDR")
		}
	default:
		return nil, errors.New("NEARBY_INDEX must be scan or redis")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
