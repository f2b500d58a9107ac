// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Addr          string
	DBPath        string
	RedisAddr     string
	AIGatewayURL  string
	AIAPIKey      string
	AIModel       string
	AITimeout     time.Duration
	YouTubeAPIKey string
	AssumedIncome float64
	RateLimit     int
	LogLevel      string
	LogJSON       bool
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		DBPath:        "finlear.db",
		AITimeout:     30 * time.Second,
		AssumedIncome: 75000,
		RateLimit:     20,
		LogLevel:      "info",
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads settings through lookup, falling back to Default for
// anything unset or blank.
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}

	if v, ok := get("FINLEAR_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := get("FINLEAR_DB_PATH"); ok {
		cfg.DBPath = v
	}
	cfg.RedisAddr, _ = get("REDIS_ADDR")
	cfg.AIGatewayURL, _ = get("AI_GATEWAY_URL")
	cfg.AIAPIKey, _ = get("AI_GATEWAY_API_KEY", "LOVABLE_API_KEY")
	cfg.AIModel, _ = get("AI_MODEL")
	cfg.YouTubeAPIKey, _ = get("YOUTUBE_API_KEY")
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v, ok := get("AI_TIMEOUT"); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return cfg, fmt.Errorf("AI_TIMEOUT: %w", err)
		}
		cfg.AITimeout = d
	}
	if v, ok := get("FINLEAR_ASSUMED_INCOME"); ok {
		f, err := cast.ToFloat64E(v)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("FINLEAR_ASSUMED_INCOME: invalid value %q", v)
		}
		cfg.AssumedIncome = f
	}
	if v, ok := get("FINLEAR_RATE_LIMIT"); ok {
		n, err := cast.ToIntE(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("FINLEAR_RATE_LIMIT: invalid value %q", v)
		}
		cfg.RateLimit = n
	}
	if v, ok := get("LOG_JSON"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, fmt.Errorf("LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}

	return cfg, nil
}
