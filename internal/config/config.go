// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"aerozone_backend/internal/database"
	"aerozone_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const defaultSQLiteDSN = "file:aerozone.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// Config is the complete runtime configuration.
type Config struct {
	Port               string
	Database           database.Config
	JWTSecret          string
	JWTTTL             time.Duration
	CORSAllowedOrigins []string
	PrometheusEnabled  bool
	LogLevel           string
	LogFormat          string
}

// Load reads an optional .env file (or the files named in envFiles) and then the environment.
// Variables already set in the environment take precedence over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:              utils.Getenv("PORT", "8080"),
		JWTSecret:         utils.Getenv("JWT_SECRET", ""),
		JWTTTL:            utils.GetenvDuration("JWT_TTL", 24*time.Hour),
		PrometheusEnabled: utils.GetenvBool("PROMETHEUS_ENABLED", false),
		LogLevel:          utils.Getenv("LOG_LEVEL", "info"),
		LogFormat:         utils.Getenv("LOG_FORMAT", "console"),
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.Database = database.Config{
		Driver:          strings.ToLower(utils.Getenv("DB_DRIVER", database.DriverPostgres)),
		MaxOpenConns:    utils.GetenvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetenvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: utils.GetenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
	switch cfg.Database.Driver {
	case database.DriverPostgres:
		cfg.Database.DSN = utils.Getenv("DATABASE_DSN", database.PostgresDSN(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "aerozone_user"),
			utils.Getenv("DB_PASSWORD", "aerozone_password"),
			utils.Getenv("DB_NAME", "aerozone_db"),
			utils.Getenv("DB_SSLMODE", "disable"),
		))
	case database.DriverSQLite:
		cfg.Database.DSN = utils.Getenv("DATABASE_DSN", defaultSQLiteDSN)
	default:
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}

	return cfg, nil
}

// Validate checks settings required to serve requests.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}
