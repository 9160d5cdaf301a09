package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	Env             string   `env:"ENV" envDefault:"dev"`
	BiographyData   string   `env:"BIOGRAPHY_DATA"`
	CORSAllowOrigin []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	GateEnabled     bool          `env:"GATE_ENABLED" envDefault:"true"`
	GateSecret      string        `env:"GATE_SECRET" envDefault:"qpwoeiruty"`
	GateDelay       time.Duration `env:"GATE_DELAY" envDefault:"500ms"`
	GateTokenSecret string        `env:"GATE_TOKEN_SECRET"`
	GateTokenTTL    time.Duration `env:"GATE_TOKEN_TTL" envDefault:"720h"`

	DatabaseURL string `env:"DATABASE_URL"`

	MediaStore string `env:"MEDIA_STORE" envDefault:"local"`
	MediaDir   string `env:"MEDIA_DIR" envDefault:"./media"`
	AWSRegion  string `env:"AWS_REGION"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Prefix   string `env:"S3_PREFIX"`

	APIRate  float64 `env:"API_RATE" envDefault:"5"`
	APIBurst int     `env:"API_BURST" envDefault:"20"`

	OTelEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`
}

// Load reads configuration from environment variables with sensible defaults.
// Local .env files are loaded first for dev convenience; values already set in
// the process environment win.
func Load() (Config, error) {
	for _, path := range []string{".env", "cmd/.env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.MediaStore = normalizeStoreType(cfg.MediaStore)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)

	if cfg.Env == "production" {
		if cfg.GateEnabled && cfg.GateTokenSecret == "" {
			return Config{}, errors.New("GATE_TOKEN_SECRET is required in production")
		}
		if cfg.MediaStore == "s3" && cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET is required when MEDIA_STORE=s3")
		}
	}
	if cfg.GateTokenSecret == "" {
		cfg.GateTokenSecret = "dev-only-" + cfg.GateSecret
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
