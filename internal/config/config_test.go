package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"aerozone_backend/internal/database"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DSN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != database.DriverSQLite || cfg.Database.DSN != defaultSQLiteDSN {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Port != "8080" || cfg.JWTTTL != 24*time.Hour {
		t.Errorf("port = %s ttl = %s", cfg.Port, cfg.JWTTTL)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an empty JWT secret")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DB_DRIVER=postgres\nDB_HOST=db.internal\nJWT_SECRET=from-file\nJWT_TTL=2h\nCORS_ALLOWED_ORIGINS=https://a.example, https://b.example\nPROMETHEUS_ENABLED=true\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "JWT_SECRET", "JWT_TTL", "CORS_ALLOWED_ORIGINS", "PROMETHEUS_ENABLED", "DATABASE_DSN"} {
		unsetForTest(t, key)
	}
	t.Setenv("PORT", "9090")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.JWTTTL != 2*time.Hour || !cfg.PrometheusEnabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %s, want environment value 9090", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Database.DSN != database.PostgresDSN("db.internal", "5432", "aerozone_user", "aerozone_password", "aerozone_db", "disable") {
		t.Errorf("dsn = %s", cfg.Database.DSN)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("Load accepted DB_DRIVER=mysql")
	}
}

// unsetForTest removes key for the duration of the test so godotenv can set it.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })
}
