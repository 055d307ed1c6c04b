package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "au-connect", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Empty(t, cfg.Postgres.DSN)
	require.True(t, cfg.Postgres.RunMigrations)
	require.Equal(t, int32(10), cfg.Postgres.MaxConns)
	require.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL())
	require.Equal(t, "auconnect.activity", cfg.Activity.Channel)
	require.Equal(t, 200*time.Millisecond, cfg.Activity.PublishTimeout())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/au?sslmode=disable")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("ACTIVITY_PUBLISH_TIMEOUT_MS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	require.Equal(t, "postgres://u:p@localhost:5432/au?sslmode=disable", cfg.Postgres.DSN)
	require.False(t, cfg.Postgres.RunMigrations)
	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Zero(t, cfg.App.RequestTimeout())
	require.Equal(t, 50*time.Millisecond, cfg.Activity.PublishTimeout())
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
