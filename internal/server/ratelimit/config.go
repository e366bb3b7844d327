package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window, 0 for unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

// LoadConfig reads RATE_LIMIT_* environment variables
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Rendering and remote fetches
		{Path: "/export/resume", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/report", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/parse/jd", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/parse/resume", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Credential checks
		{Path: "/auth/token", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Writes
		{Path: "/profile/save", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/cover-letter", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profiles/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Scoring and reads fall through to the default limit
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
