package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigStaticCatalog(t *testing.T) {
	t.Setenv("CATALOG_STATIC", "true")
	t.Setenv("DB_HOST", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SESSION_TTL", "")

	cfg := LoadConfig()

	assert.True(t, cfg.CatalogStatic)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CATALOG_STATIC", "true")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_TTL", "10m")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
}

func TestDSN(t *testing.T) {
	t.Setenv("CATALOG_STATIC", "true")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "baker")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "crumbline")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_SSLMODE", "")

	cfg := LoadConfig()
	assert.Equal(t,
		"host=localhost user=baker password=secret dbname=crumbline port=5432 sslmode=disable",
		cfg.DSN())

	t.Setenv("DB_SSLMODE", "require")
	cfg = LoadConfig()
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestLoadConfigBadDuration(t *testing.T) {
	t.Setenv("CATALOG_STATIC", "true")
	t.Setenv("SESSION_TTL", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
