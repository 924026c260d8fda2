package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// RateLimit is a ulule/limiter formatted rate such as "100-M".
	RateLimit          string
	CORSAllowedOrigins []string

	// ShiftLocation is the zone in which invoice shifts are classified.
	ShiftLocation *time.Location

	QueryDefaultLimit int
	QueryMaxLimit     int

	PosthogAPIKey   string
	PosthogEndpoint string

	MigrationsPath      string
	ReconcileBatchSize  int
	ReconcileGraceAfter time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SHIFT_TIMEZONE", "Local")
	viper.SetDefault("QUERY_DEFAULT_LIMIT", 10)
	viper.SetDefault("QUERY_MAX_LIMIT", 100)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RECONCILE_BATCH_SIZE", 50)
	viper.SetDefault("RECONCILE_GRACE_PERIOD", "5m")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		QueryDefaultLimit:  viper.GetInt("QUERY_DEFAULT_LIMIT"),
		QueryMaxLimit:      viper.GetInt("QUERY_MAX_LIMIT"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    viper.GetString("POSTHOG_ENDPOINT"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		ReconcileBatchSize: viper.GetInt("RECONCILE_BATCH_SIZE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random"
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.QueryDefaultLimit <= 0 {
		cfg.QueryDefaultLimit = 10
	}
	if cfg.QueryMaxLimit < cfg.QueryDefaultLimit {
		log.Printf("Warning: QUERY_MAX_LIMIT (%d) is below QUERY_DEFAULT_LIMIT. Using %d.\n", cfg.QueryMaxLimit, cfg.QueryDefaultLimit)
		cfg.QueryMaxLimit = cfg.QueryDefaultLimit
	}
	if cfg.ReconcileBatchSize <= 0 {
		cfg.ReconcileBatchSize = 50
	}

	tz := viper.GetString("SHIFT_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_TIMEZONE %q: %w", tz, err)
	}
	cfg.ShiftLocation = loc

	graceStr := viper.GetString("RECONCILE_GRACE_PERIOD")
	grace, err := time.ParseDuration(graceStr)
	if err != nil {
		grace = 5 * time.Minute
		log.Printf("Warning: Invalid value for RECONCILE_GRACE_PERIOD ('%s'). Defaulting to %s.\n", graceStr, grace)
	}
	cfg.ReconcileGraceAfter = grace

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
