package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment
// variables once at process start and passed to constructors.
type Config struct {
	DBConnStr  string
	ListenAddr string

	NominatimBaseURL string

	KafkaBrokers   []string
	AnalyticsTopic string

	RedisAddr     string
	RedisPassword string

	RateLimitWindow time.Duration
	RateLimitMax    int
}

// Load reads configuration from environment variables, applying
// defaults where unset. DB_CONN_STR is the only required setting.
func Load() (*Config, error) {
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		return nil, errors.New("DB_CONN_STR env variable must be set")
	}

	window, err := time.ParseDuration(envOrDefault("RATE_LIMIT_WINDOW", "1m"))
	if err != nil || window <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_WINDOW")
	}

	maxRequests, err := strconv.Atoi(envOrDefault("RATE_LIMIT_MAX", "60"))
	if err != nil || maxRequests <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_MAX")
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		DBConnStr:        dbConnStr,
		ListenAddr:       envOrDefault("LISTEN_ADDR", ":8000"),
		NominatimBaseURL: envOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		KafkaBrokers:     brokers,
		AnalyticsTopic:   envOrDefault("ANALYTICS_TOPIC", "topic.search.events"),
		RedisAddr:        os.Getenv("RedisAddr"),
		RedisPassword:    os.Getenv("RedisPassword"),
		RateLimitWindow:  window,
		RateLimitMax:     maxRequests,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
