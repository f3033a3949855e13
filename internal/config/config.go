package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	LegacyAPIBase        string
	LegacyTimeoutSeconds int
	DatabaseURL          string
	SessionFilePath      string
	JWTSecret            string
	JWTIssuer            string
	AccessTTLSeconds     int64
	RefreshTTLSeconds    int64
	MetricsDiskPath      string
	MetricsCronSpec      string
	EvictionCronSpec     string
	ControllerIdleMins   int
	CorsOrigins          []string
	LogLevel             string
	Environment          string
}

func Load() Config {
	return Config{
		LegacyAPIBase:        envOr("LEGACY_API_BASE", "https://oxfordjc.com/appservices"),
		LegacyTimeoutSeconds: envOrInt("LEGACY_TIMEOUT_SECONDS", 20),
		DatabaseURL:          envOr("DATABASE_URL", ""),
		SessionFilePath:      envOr("SESSION_FILE", "storage/sessions.json"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "schoolapp"),
		AccessTTLSeconds:     int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds:    int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsCronSpec:      envOr("METRICS_CRON_SPEC", "@every 5m"),
		EvictionCronSpec:     envOr("EVICTION_CRON_SPEC", "@every 30m"),
		ControllerIdleMins:   envOrInt("CONTROLLER_IDLE_MINUTES", 60),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		Environment:          envOr("ENVIRONMENT", "development"),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
