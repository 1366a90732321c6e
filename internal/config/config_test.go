package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, int64(5<<20), cfg.Image.MaxBytes)
	assert.Equal(t, 10*time.Second, cfg.Image.Timeout)
	assert.Equal(t, []string{"cards.scryfall.io", "c1.scryfall.com", "c2.scryfall.com", "svgs.scryfall.io"}, cfg.Image.AllowedHosts)
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("IMAGE_ALLOWED_HOSTS", " Example.com , ,img.test ")
	t.Setenv("SCRYFALL_RATE_DELAY", "not-a-duration")
	t.Setenv("SCRYFALL_BASE_URL", "http://localhost:9999/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"example.com", "img.test"}, cfg.Image.AllowedHosts)
	assert.Equal(t, 100*time.Millisecond, cfg.Scryfall.RateDelay)
	assert.Equal(t, "http://localhost:9999", cfg.Scryfall.BaseURL)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", d.DSN())
}
