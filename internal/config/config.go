// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minProductionSecretLength = 32

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config holds all application configuration.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Auth        AuthConfig
	Redis       RedisConfig
	CORS        CORSConfig
	HTTP        HTTPConfig
	RateLimit   RateLimitConfig
	Webhooks    WebhookConfig
	Monitor     MonitorConfig
}

// DatabaseConfig selects and locates the backing store.
type DatabaseConfig struct {
	Driver        string // postgres, mysql, sqlite or mongo
	URL           string // DSN for the SQL drivers, connection URI for mongo
	MongoDatabase string
}

type AuthConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	RolePolicy string // claim or store
}

// RedisConfig locates the token revocation store. An empty Addr disables
// server-side revocation.
type RedisConfig struct {
	Addr     string
	Password string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// HTTPConfig controls how client addresses are derived. Forwarding headers
// are ignored unless the peer is one of TrustedProxies (IPs or CIDRs).
type HTTPConfig struct {
	TrustedProxies []string
}

// WebhookConfig lists incoming webhooks told about company changes. Both
// are optional.
type WebhookConfig struct {
	DiscordURL string
	SlackURL   string
}

type MonitorConfig struct {
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoadDotEnv loads a .env file when one is present.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load()
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	rps, err := getEnvFloat("AUTH_RATE_LIMIT", 5)

	if err != nil {
		return nil, err
	}

	burst, err := getEnvInt("AUTH_RATE_BURST", 10)

	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			URL:           getEnv("DATABASE_URL", "companies.db"),
			MongoDatabase: getEnv("MONGO_DATABASE", "famous_companies_db"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			JWTExpiry:  parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
			RolePolicy: strings.ToLower(getEnv("ROLE_POLICY", "claim")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins(),
		},
		HTTP: HTTPConfig{
			TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		Webhooks: WebhookConfig{
			DiscordURL: getEnv("DISCORD_WEBHOOK_URL", ""),
			SlackURL:   getEnv("SLACK_WEBHOOK_URL", ""),
		},
		Monitor: MonitorConfig{
			ProbeInterval: parseDuration(getEnv("DB_PROBE_INTERVAL", "30s"), 30*time.Second),
			ProbeTimeout:  parseDuration(getEnv("DB_PROBE_TIMEOUT", "5s"), 5*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecretLength)
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite", "mongo":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Auth.RolePolicy {
	case "claim", "store":
	default:
		return fmt.Errorf("unsupported ROLE_POLICY %q", c.Auth.RolePolicy)
	}

	if c.Auth.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}

	for _, proxy := range c.HTTP.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
			}
		}
	}

	if c.Monitor.ProbeInterval <= 0 {
		return fmt.Errorf("DB_PROBE_INTERVAL must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, Env: %s, DB: %s, RolePolicy: %s, Redis: %t, Webhooks: %t, Auth: *** (masked) ***}",
		c.Port, c.Environment, c.Database.Driver, c.Auth.RolePolicy, c.Redis.Addr != "",
		c.Webhooks.DiscordURL != "" || c.Webhooks.SlackURL != "")
}

func allowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	return append(origins, splitList(os.Getenv("ALLOWED_ORIGINS"))...)
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(raw string) []string {
	var items []string

	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return items
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	if value, exists := os.LookupEnv(key); exists {
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %w", key, err)
		}
		return floatVal, nil
	}
	return defaultVal, nil
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
