package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "0123456789abcdef-admin"

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("ATTENDANCE_BOT__ADMIN_TOKEN", testAdminToken)
	t.Setenv("ATTENDANCE_DATABASE__USER", "attendance")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.Lifecycle.ExpireAfter)
	assert.Equal(t, time.Hour, cfg.Lifecycle.DedupeInterval)
	assert.Equal(t, 2*time.Hour, cfg.Lifecycle.ListLookBack)
	assert.Equal(t, time.Hour, cfg.Lifecycle.ListLookAhead)
	assert.Equal(t, 10*time.Minute, cfg.Bot.DraftTTL)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadReadsNestedKeys(t *testing.T) {
	t.Setenv("ATTENDANCE_BOT__ADMIN_TOKEN", testAdminToken)
	t.Setenv("ATTENDANCE_PRIMARY__ENV", "production")
	t.Setenv("ATTENDANCE_DATABASE__URL", "postgres://bot@db:5432/attendance")
	t.Setenv("ATTENDANCE_DATABASE__SSL_MODE", "require")
	t.Setenv("ATTENDANCE_LIFECYCLE__DEDUPE_INTERVAL", "15m")
	t.Setenv("ATTENDANCE_LIFECYCLE__EXPIRE_AFTER", "36h")
	t.Setenv("ATTENDANCE_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://bot@db:5432/attendance", cfg.Database.URL)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.Lifecycle.DedupeInterval)
	assert.Equal(t, 36*time.Hour, cfg.Lifecycle.ExpireAfter)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadRejectsMissingAdminToken(t *testing.T) {
	t.Setenv("ATTENDANCE_DATABASE__USER", "attendance")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AdminToken")
}

func TestLoadRejectsMissingDatabaseUser(t *testing.T) {
	t.Setenv("ATTENDANCE_BOT__ADMIN_TOKEN", testAdminToken)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User")
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "inf"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, "error", cfg.GetLogLevel())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("ATTENDANCE_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("ATTENDANCE_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}
