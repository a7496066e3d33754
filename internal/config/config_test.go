package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DIALECT", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DialectSQLite, cfg.Database.Dialect)
	assert.Equal(t, "data/database.sqlite", cfg.Database.Storage)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 10*time.Second, cfg.App.RequestTimeout)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DIALECT", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/profiles")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DialectPostgres, cfg.Database.Dialect)
	assert.Equal(t, "postgres://u:p@db:5432/profiles", cfg.Database.URL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_RejectsUnknownDialect(t *testing.T) {
	t.Setenv("DB_DIALECT", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported DB_DIALECT")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}

func TestLoad_ValidatesPublishSchedule(t *testing.T) {
	t.Setenv("QUEUE_ENABLED", "true")
	t.Setenv("PUBLISH_SCHEDULE", "every day")

	_, err := Load()
	assert.ErrorContains(t, err, "PUBLISH_SCHEDULE")

	t.Setenv("PUBLISH_SCHEDULE", "*/15 * * * *")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "*/15 * * * *", cfg.Queue.PublishSchedule)
}
