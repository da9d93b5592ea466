// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, payment and LLM provider
// credentials, object storage, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-report-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// JWTConfig defines bearer-token settings.
type JWTConfig struct {
	Secret string        // JWT_SECRET (required)
	TTL    time.Duration // JWT_TTL
}

// StripeConfig defines payment verification settings.
type StripeConfig struct {
	APIKey  string // STRIPE_API_KEY
	BaseURL string // STRIPE_BASE_URL (override for tests/sandboxes)
	Timeout time.Duration
}

// LLMConfig defines the content generation providers.
type LLMConfig struct {
	OpenAIKey       string // OPENAI_API_KEY
	OpenAIBaseURL   string // OPENAI_BASE_URL
	OpenAIModel     string // OPENAI_MODEL
	PerplexityKey   string // PERPLEXITY_API_KEY
	PerplexityURL   string // PERPLEXITY_BASE_URL
	PerplexityModel string // PERPLEXITY_MODEL
	Timeout         time.Duration
}

// S3Config defines object storage settings for published documents.
type S3Config struct {
	Bucket     string        // S3_BUCKET (required)
	Region     string        // S3_REGION
	Endpoint   string        // S3_ENDPOINT (optional MinIO/localstack override)
	AccessKey  string        // S3_ACCESS_KEY (optional, default chain when empty)
	SecretKey  string        // S3_SECRET_KEY
	KeyPrefix  string        // S3_KEY_PREFIX
	PresignTTL time.Duration // S3_PRESIGN_TTL
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel    string // debug|info|warn|error|fatal|panic
	LogPretty   bool   // pretty console logs in dev
	APIBasePath string // base path for API routes

	// App
	DBPath  string // SQLite path
	MaxTier int    // highest report tier offered

	// External providers
	JWT    JWTConfig
	Stripe StripeConfig
	LLM    LLMConfig
	S3     S3Config

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:   getbool("LOG_PRETTY", false),
		APIBasePath: normalizeBasePath(getenv("API_BASE_PATH", "/")),

		// App
		DBPath:  getenv("DB_PATH", "app.db"),
		MaxTier: getint("MAX_TIER", 3),

		// External providers
		JWT: JWTConfig{
			Secret: getenv("JWT_SECRET", ""),
			TTL:    getdur("JWT_TTL", time.Hour),
		},
		Stripe: StripeConfig{
			APIKey:  getenv("STRIPE_API_KEY", ""),
			BaseURL: getenv("STRIPE_BASE_URL", "https://api.stripe.com"),
			Timeout: getdur("STRIPE_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			OpenAIKey:       getenv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getenv("OPENAI_BASE_URL", "https://api.openai.com"),
			OpenAIModel:     getenv("OPENAI_MODEL", "gpt-4o-mini"),
			PerplexityKey:   getenv("PERPLEXITY_API_KEY", ""),
			PerplexityURL:   getenv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			PerplexityModel: getenv("PERPLEXITY_MODEL", "sonar"),
			Timeout:         getdur("LLM_TIMEOUT", 120*time.Second),
		},
		S3: S3Config{
			Bucket:     getenv("S3_BUCKET", ""),
			Region:     getenv("S3_REGION", "us-east-1"),
			Endpoint:   getenv("S3_ENDPOINT", ""),
			AccessKey:  getenv("S3_ACCESS_KEY", ""),
			SecretKey:  getenv("S3_SECRET_KEY", ""),
			KeyPrefix:  getenv("S3_KEY_PREFIX", "reports/"),
			PresignTTL: getdur("S3_PRESIGN_TTL", time.Hour),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-report-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.S3.KeyPrefix != "" && !strings.HasSuffix(cfg.S3.KeyPrefix, "/") {
		cfg.S3.KeyPrefix += "/"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.MaxTier < 1 {
		return cfg, errors.New("MAX_TIER must be >= 1")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return cfg, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.JWT.TTL <= 0 {
		return cfg, errors.New("JWT_TTL must be > 0")
	}
	if cfg.Stripe.Timeout <= 0 || cfg.LLM.Timeout <= 0 {
		return cfg, errors.New("provider timeouts must be positive durations")
	}
	if strings.TrimSpace(cfg.S3.Bucket) == "" {
		return cfg, errors.New("S3_BUCKET must not be empty")
	}
	if cfg.S3.PresignTTL <= 0 {
		return cfg, errors.New("S3_PRESIGN_TTL must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
