package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupMap(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(lookupMap(nil))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(lookupMap(map[string]string{
		"FINLEAR_ADDR":           ":9090",
		"FINLEAR_DB_PATH":        "/tmp/x.db",
		"REDIS_ADDR":             "localhost:6379",
		"LOVABLE_API_KEY":        "legacy",
		"FINLEAR_ASSUMED_INCOME": "120000",
		"FINLEAR_RATE_LIMIT":     "0",
		"AI_TIMEOUT":             "5s",
		"LOG_LEVEL":              "DEBUG",
		"LOG_JSON":               "true",
	}))
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "/tmp/x.db", cfg.DBPath)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "legacy", cfg.AIAPIKey)
	require.Equal(t, 120000.0, cfg.AssumedIncome)
	require.Equal(t, 0, cfg.RateLimit)
	require.Equal(t, 5*time.Second, cfg.AITimeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.LogJSON)
}

func TestLoadPrefersGatewayKey(t *testing.T) {
	cfg, err := LoadFrom(lookupMap(map[string]string{
		"AI_GATEWAY_API_KEY": "primary",
		"LOVABLE_API_KEY":    "legacy",
	}))
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.AIAPIKey)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	for _, env := range []map[string]string{
		{"FINLEAR_ASSUMED_INCOME": "lots"},
		{"FINLEAR_ASSUMED_INCOME": "-5"},
		{"FINLEAR_RATE_LIMIT": "fast"},
		{"LOG_JSON": "maybe"},
	} {
		_, err := LoadFrom(lookupMap(env))
		require.Error(t, err, "%v", env)
	}
}
