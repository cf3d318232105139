package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	UserAgent      string
	APIBayEndpoint string
	RedisURL       string
	CacheTTL       time.Duration
	CacheDisabled  bool

	// Top100RefreshCategories lists category codes whose top-100 listings
	// are kept warm in the background. Empty disables the refresher.
	Top100RefreshCategories []uint16
	Top100RefreshInterval   time.Duration
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8091"),
		RequestTimeout: time.Duration(getEnvInt("APIBAY_TIMEOUT_SECONDS", 15)) * time.Second,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		UserAgent:      getEnv("APIBAY_USER_AGENT", "piratebay-metadata/1.0"),
		APIBayEndpoint: getEnv("APIBAY_ENDPOINT", "https://apibay.org"),
		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
		CacheDisabled:  getEnvBool("CACHE_DISABLED", false),

		Top100RefreshCategories: parseCategoryCodes(os.Getenv("TOP100_REFRESH_CATEGORIES")),
		Top100RefreshInterval:   time.Duration(getEnvInt("TOP100_REFRESH_MINUTES", 5)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// parseCategoryCodes parses a comma-separated list of category codes,
// dropping blanks, duplicates and values that do not fit a code.
func parseCategoryCodes(raw string) []uint16 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]uint16, 0, len(parts))
	seen := make(map[uint16]struct{}, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		parsed, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			continue
		}
		code := uint16(parsed)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
