package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Secrets that must never sign tokens. The first one is the value earlier
// deployments fell back to when JWT_SECRET was unset.
var placeholderSecrets = []string{
	"fallback-secret",
	"default_secret_key_change_in_production",
	"changeme",
	"secret",
}

const minSecretLength = 32

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name                string
	Environment         string
	Port                string
	Timeout             time.Duration
	AllowedOrigins      []string
	HealthCheckInterval time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	Database     int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UserCacheTTL time.Duration
}

type JWTConfig struct {
	Secret          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	CleanupInterval time.Duration // 0 disables the expired token purge
}

type SecurityConfig struct {
	BcryptCost      int
	HashConcurrency int
}

type SeedConfig struct {
	DemoUsers bool
}

// LoadConfig reads configuration from the environment (and .env when present).
// It fails instead of falling back when the signing secret is missing or weak,
// or when a token TTL cannot be parsed.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	refreshTTL, err := ParseTTL(getEnv("REFRESH_TOKEN_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRES_IN: %w", err)
	}
	accessTTL, err := ParseTTL(getEnv("JWT_ACCESS_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_TTL: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:                getEnv("APP_NAME", "auth-service"),
			Environment:         getEnv("APP_ENV", "development"),
			Port:                getEnv("APP_PORT", "3000"),
			Timeout:             getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
			AllowedOrigins:      getEnvAsList("ALLOWED_ORIGINS"),
			HealthCheckInterval: getEnvAsDuration("HEALTH_CHECK_INTERVAL", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "auth_db"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			UserCacheTTL: getEnvAsDuration("USER_CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			AccessTTL:       accessTTL,
			RefreshTTL:      refreshTTL,
			CleanupInterval: getEnvAsDuration("TOKEN_CLEANUP_INTERVAL", time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
			HashConcurrency: getEnvAsInt("HASH_CONCURRENCY", runtime.GOMAXPROCS(0)),
		},
		Seed: SeedConfig{
			DemoUsers: getEnvAsBool("SEED_DEMO_USERS", false),
		},
	}

	if err := ValidateSecret(config.JWT.Secret); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateSecret rejects empty, short and well-known placeholder secrets
func ValidateSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	for _, placeholder := range placeholderSecrets {
		if secret == placeholder {
			return errors.New("JWT_SECRET is set to a known placeholder value")
		}
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	return nil
}

// ParseTTL parses token lifetimes. "7d" style integer-day values are accepted
// alongside anything time.ParseDuration understands ("15m", "168h").
func ParseTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty duration")
	}

	var ttl time.Duration
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", value)
		}
		if n > math.MaxInt64/int64(24*time.Hour) {
			return 0, fmt.Errorf("day count %q is out of range", value)
		}
		ttl = time.Duration(n) * 24 * time.Hour
	} else {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", value, err)
		}
		ttl = d
	}

	if ttl <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", value)
	}
	return ttl, nil
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsDevelopment reports whether error details may be returned to clients
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
