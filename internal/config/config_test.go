package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL", "MONGO_DATABASE",
		"JWT_SECRET", "JWT_EXPIRY", "ROLE_POLICY", "REDIS_ADDR", "REDIS_PASSWORD",
		"CLIENT_URL", "ALLOWED_ORIGINS", "AUTH_RATE_LIMIT", "AUTH_RATE_BURST",
		"DISCORD_WEBHOOK_URL", "SLACK_WEBHOOK_URL", "DB_PROBE_INTERVAL", "DB_PROBE_TIMEOUT", "TRUSTED_PROXIES",
	} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "famous_companies_db", cfg.Database.MongoDatabase)
	assert.Equal(t, "claim", cfg.Auth.RolePolicy)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, defaultOrigins, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Webhooks.DiscordURL)
	assert.Equal(t, 30*time.Second, cfg.Monitor.ProbeInterval)
	assert.Equal(t, 5*time.Second, cfg.Monitor.ProbeTimeout)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
}

func TestLoad_TrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.HTTP.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	_, err = Load()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestLoad_Webhooks(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.example/T000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.slack.example/T000", cfg.Webhooks.SlackURL)
	assert.NotContains(t, cfg.String(), "hooks.slack.example")
	assert.Contains(t, cfg.String(), "Webhooks: true")
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresLongSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "this-is-a-test-secret-with-32-bytes!")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownDriverAndPolicy(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")

	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "MONGO")
	t.Setenv("ROLE_POLICY", "sometimes")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("ROLE_POLICY", "store")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, "store", cfg.Auth.RolePolicy)
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("AUTH_RATE_BURST", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("CLIENT_URL", "https://app.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://app.example.com")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://a.example.com")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://b.example.com")
	assert.Len(t, cfg.CORS.AllowedOrigins, len(defaultOrigins)+3)
}

func TestParseDuration_FallsBack(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("nope", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}

func TestString_MasksSecret(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "super-secret"}}

	assert.NotContains(t, cfg.String(), "super-secret")
}
