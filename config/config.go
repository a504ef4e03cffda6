package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Content sources
const (
	ContentSourceEmbedded = "embedded"
	ContentSourceFile     = "file"
	ContentSourceStorage  = "storage"
)

type Config struct {
	ServerPort     string   `env:"SERVER_PORT" envDefault:"8080"`
	DBPath         string   `env:"DB_PATH" envDefault:"db/app.db"`
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	AppURL         string   `env:"APP_URL" envDefault:"http://localhost:8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	UploadDir      string   `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	// Content
	ContentSource  string `env:"CONTENT_SOURCE" envDefault:"embedded"`
	ContentPath    string `env:"CONTENT_PATH" envDefault:"content/site.yaml"`
	ContentWatch   bool   `env:"CONTENT_WATCH" envDefault:"false"`
	DefaultVariant string `env:"DEFAULT_VARIANT"`
	// Stats animation
	StatsTickInterval time.Duration `env:"STATS_TICK_INTERVAL" envDefault:"30ms"`
	StatsMaxSessions  int           `env:"STATS_MAX_SESSIONS" envDefault:"1000"`
	StatsSessionTTL   time.Duration `env:"STATS_SESSION_TTL" envDefault:"10m"`
	// Email (Resend)
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"noreply@bridgeglobaltax.com"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"File Bridge Global"`
	EmailTestMode bool   `env:"EMAIL_TEST_MODE" envDefault:"true"` // When true, emails are logged to console instead of sent
	NotifyEmail   string `env:"NOTIFY_EMAIL" envDefault:"hello@bridgeglobaltax.com"`
	// Turso
	TursoDatabaseURL string `env:"TURSO_DATABASE_URL"`
	TursoAuthToken   string `env:"TURSO_AUTH_TOKEN"`
	// Cloudflare Turnstile
	TurnstileSiteKey   string `env:"TURNSTILE_SITE_KEY"`
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL"`
	// Cloudflare R2 Storage
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicURL       string `env:"R2_PUBLIC_URL"`
	// Admin
	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("[CRITICAL] Invalid configuration: %v", err)
	}

	if cfg.AdminPasswordHash == "" {
		log.Println("[WARNING] ADMIN_PASSWORD_HASH is not set; admin routes are disabled. Generate one with: admin hash-password")
	}

	return cfg
}

// Parse builds a Config from environment variables only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c *Config) Validate() error {
	switch c.ContentSource {
	case ContentSourceEmbedded, ContentSourceFile, ContentSourceStorage:
	default:
		return fmt.Errorf("CONTENT_SOURCE must be one of embedded, file, storage (got %q)", c.ContentSource)
	}
	if c.StatsTickInterval <= 0 {
		return fmt.Errorf("STATS_TICK_INTERVAL must be positive (got %s)", c.StatsTickInterval)
	}
	if c.StatsMaxSessions <= 0 {
		return fmt.Errorf("STATS_MAX_SESSIONS must be positive (got %d)", c.StatsMaxSessions)
	}
	if c.IsProduction() && strings.Contains(c.AppURL, "localhost") {
		log.Printf("[WARNING] APP_URL points to localhost in production: %s", c.AppURL)
	}
	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AdminEnabled reports whether admin routes should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

// R2Configured reports whether every R2 credential is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}
