package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg := Load("")

	assert.Equal(t, "platform", cfg.App.Name)
	assert.Equal(t, "unknown", cfg.App.Env)
	assert.Equal(t, "dev", cfg.App.BuildSHA)
	assert.Equal(t, 8000, cfg.App.HTTP.Port)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.DB.AutoMigrate)

	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_NAME", "platform-api")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BUILD_SHA", "abc123")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "platform")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_AUTOMIGRATE", "true")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("LOG_JSON", "false")

	cfg := Load("")

	assert.Equal(t, "platform-api", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "abc123", cfg.App.BuildSHA)
	assert.Equal(t, 9090, cfg.App.HTTP.Port)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "platform", cfg.DB.Name)
	assert.Equal(t, "svc", cfg.DB.User)
	assert.Equal(t, "secret", cfg.DB.Password)
	assert.True(t, cfg.DB.AutoMigrate)

	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr())
}
