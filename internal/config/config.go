package config

import (
	"os"
	"strconv"
	"strings"
)

// Default values (tune here for system-wide changes)
const (
	// Server
	DefaultHTTPPort    = 8090
	DefaultMetricsPort = 9090

	// Environment endpoint is off unless explicitly enabled; it can
	// expose secrets when the masking policy is relaxed.
	DefaultEndpointEnabled = false

	// Redis (local dev defaults; override via env in k8s)
	DefaultRedisURL            = ""
	DefaultRedisHashKey        = "config:properties"
	DefaultRedisPoolSize       = 20
	DefaultRedisMinIdleConns   = 5
	DefaultRedisPoolTimeoutMs  = 2000 // 2s - fast fail for backpressure
	DefaultRedisReadTimeoutMs  = 1000 // 1s
	DefaultRedisWriteTimeoutMs = 1000 // 1s

	// JWT (local dev defaults; override via env in k8s)
	DefaultJWTSecretKey    = "secret"
	DefaultJWTAlgorithm    = "HS256"
	DefaultJWTIssuer       = "api.dev.growbin.app/api/v1/auth"
	DefaultJWTAudience     = "management"
	DefaultJWTClockSkewSec = 5

	// Masking
	DefaultFilterMode = "mask_all"
)

type Config struct {
	HTTPPort    int
	MetricsPort int

	// Environment endpoint
	EndpointEnabled bool
	AuthRequired    bool

	// Masking policy (mask_all | mask_none | legacy + extra patterns)
	FilterMode     string
	FilterPatterns []string

	// Property source inputs
	DotenvPath         string
	YAMLPath           string
	ActiveEnvironments []string
	Packages           []string

	// Remote source
	RedisURL     string
	RedisHashKey string
	AMQPURL      string

	// JWT
	JWTSecretKey    string
	JWTAlgorithm    string
	JWTIssuer       string
	JWTAudience     string
	JWTClockSkewSec int

	// Redis Pool Settings
	RedisPoolSize       int
	RedisMinIdleConns   int
	RedisPoolTimeoutMs  int
	RedisReadTimeoutMs  int
	RedisWriteTimeoutMs int
}

func Load() *Config {
	return &Config{
		HTTPPort:    getEnvAsInt("ENVREPORT_HTTP_PORT", DefaultHTTPPort),
		MetricsPort: getEnvAsInt("ENVREPORT_METRICS_PORT", DefaultMetricsPort),

		EndpointEnabled: getEnvAsBool("ENVREPORT_ENDPOINT_ENABLED", DefaultEndpointEnabled),
		AuthRequired:    getEnvAsBool("ENVREPORT_AUTH_REQUIRED", false),

		FilterMode:     getEnv("ENVREPORT_FILTER_MODE", DefaultFilterMode),
		FilterPatterns: getEnvAsList("ENVREPORT_FILTER_PATTERNS"),

		DotenvPath:         getEnv("ENVREPORT_DOTENV_PATH", ""),
		YAMLPath:           getEnv("ENVREPORT_YAML_PATH", ""),
		ActiveEnvironments: getEnvAsList("ENVREPORT_ACTIVE_ENVIRONMENTS"),
		Packages:           getEnvAsList("ENVREPORT_PACKAGES"),

		RedisURL:     getEnv("ENVREPORT_REDIS_URL", DefaultRedisURL),
		RedisHashKey: getEnv("ENVREPORT_REDIS_HASH_KEY", DefaultRedisHashKey),
		AMQPURL:      getEnv("ENVREPORT_AMQP_URL", ""),

		JWTSecretKey:    getEnv("ENVREPORT_SECRET_KEY", DefaultJWTSecretKey),
		JWTAlgorithm:    getEnv("ENVREPORT_ALGORITHM", DefaultJWTAlgorithm),
		JWTIssuer:       getEnv("ENVREPORT_ISSUER", DefaultJWTIssuer),
		JWTAudience:     getEnv("ENVREPORT_AUDIENCE", DefaultJWTAudience),
		JWTClockSkewSec: getEnvAsInt("ENVREPORT_CLOCK_SKEW_SEC", DefaultJWTClockSkewSec),

		RedisPoolSize:       getEnvAsInt("REDIS_POOL_SIZE", DefaultRedisPoolSize),
		RedisMinIdleConns:   getEnvAsInt("REDIS_MIN_IDLE_CONNS", DefaultRedisMinIdleConns),
		RedisPoolTimeoutMs:  getEnvAsInt("REDIS_POOL_TIMEOUT_MS", DefaultRedisPoolTimeoutMs),
		RedisReadTimeoutMs:  getEnvAsInt("REDIS_READ_TIMEOUT_MS", DefaultRedisReadTimeoutMs),
		RedisWriteTimeoutMs: getEnvAsInt("REDIS_WRITE_TIMEOUT_MS", DefaultRedisWriteTimeoutMs),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
