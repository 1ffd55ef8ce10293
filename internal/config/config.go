package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

type Config struct {
	App       AppConfig
	Maglog    MaglogConfig
	Session   SessionConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// MaglogConfig holds the WMS identifiers. Only the tenant is configurable;
// the endpoint and owner are the compiled-in values.
type MaglogConfig struct {
	URL    string
	Tenant string
	Owner  string
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	CookieName      string
	SecureCookie    bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// Load reads .env (when present) and the environment
func Load() *Config {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom reads configuration through v, using envFile when it exists
func LoadFrom(v *viper.Viper, envFile string) *Config {
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Warning: %s file not found, using environment variables: %v", envFile, err)
		}
	}
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "expedicao-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("SESSION_TTL_MINUTES", 120)
	v.SetDefault("SESSION_CLEANUP_MINUTES", 5)
	v.SetDefault("SESSION_COOKIE_NAME", "expedicao_session")
	v.SetDefault("SESSION_SECURE_COOKIE", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Maglog: MaglogConfig{
			URL:    entity.ExpedicaoURL,
			Tenant: tenant(v),
			Owner:  entity.ClientID,
		},
		Session: SessionConfig{
			TTL:             time.Duration(v.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			CleanupInterval: time.Duration(v.GetInt("SESSION_CLEANUP_MINUTES")) * time.Minute,
			CookieName:      v.GetString("SESSION_COOKIE_NAME"),
			SecureCookie:    v.GetBool("SESSION_SECURE_COOKIE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// tenant resolves the tenant override. NEXT_PUBLIC_TENANT is still honoured
// for deployments carried over from the web front end.
func tenant(v *viper.Viper) string {
	for _, key := range []string{"TENANT", "NEXT_PUBLIC_TENANT"} {
		if t := strings.TrimSpace(v.GetString(key)); t != "" {
			return t
		}
	}
	return entity.DefaultTenant
}

// Validate checks the identifiers sent to the WMS are well formed
func (c *Config) Validate() error {
	if _, err := uuid.Parse(c.Maglog.Tenant); err != nil {
		return fmt.Errorf("invalid TENANT %q: %w", c.Maglog.Tenant, err)
	}
	if _, err := uuid.Parse(c.Maglog.Owner); err != nil {
		return fmt.Errorf("invalid owner id %q: %w", c.Maglog.Owner, err)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Duration <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d requests per %d seconds", c.RateLimit.Requests, c.RateLimit.Duration)
	}
	return nil
}
