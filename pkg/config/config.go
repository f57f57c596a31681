package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	// OrderingLatestIntent applies a response only when no newer request has already completed.
	OrderingLatestIntent = "latest-intent"
	// OrderingCompletion applies whichever response arrives last.
	OrderingCompletion = "completion"
)

const defaultBackendURL = "http://localhost:8000"

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backend  BackendConfig
	Sessions SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// BackendConfig points the dashboard at the message and classification API.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	Ordering       string
}

// SessionConfig controls reviewer session lifetime.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Backend = BackendConfig{
		BaseURL:        resolveBackendURL(v.GetString("API_URL"), v.GetString("NEXT_PUBLIC_API_URL")),
		RequestTimeout: parseDuration(v.GetString("REQUEST_TIMEOUT"), 10*time.Second),
		Ordering:       parseOrdering(v.GetString("ORDERING_POLICY")),
	}

	cfg.Sessions = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE"),
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
		Secure:     cfg.Env == EnvProduction,
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("API_URL", "")
	v.SetDefault("NEXT_PUBLIC_API_URL", "")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("ORDERING_POLICY", OrderingLatestIntent)

	v.SetDefault("SESSION_COOKIE", "dashboard_session")
	v.SetDefault("SESSION_TTL", "2h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
}

// resolveBackendURL prefers API_URL, then the frontend-style variable, then the local default.
func resolveBackendURL(candidates ...string) string {
	for _, candidate := range candidates {
		if trimmed := strings.TrimRight(strings.TrimSpace(candidate), "/"); trimmed != "" {
			return trimmed
		}
	}
	return defaultBackendURL
}

func parseOrdering(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case OrderingCompletion:
		return OrderingCompletion
	default:
		return OrderingLatestIntent
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
