package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Storage is the Mongo part of the configuration. The seed CLI needs nothing else.
type Storage struct {
	MongoURI           string
	MongoDatabase      string
	ShopCollection     string
	ReviewCollection   string
	FavoriteCollection string
	Timeout            time.Duration
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Storage
	Addr                 string
	Timezone             string
	ServerLog            *log.Logger
	JWTConfigs           []JWTConfig
	JWTAudience          string
	AllowedOrigins       []string
	FingerprintSecret    []byte
	ReviewRatePerMinute  float64
	ReviewRateBurst      int
	MessengerEndpoint    string
	MessengerDestination string
	MessengerTimeout     time.Duration
	AdminBaseURL         string
	HydrationConcurrency int
}

// Load reads .env (if present) and environment variables. Missing secrets are fatal.
func Load() Config {
	LoadDotEnv()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ServerLog.Printf("loaded config: addr=%q db=%q timezone=%q messengerEndpoint=%q", cfg.Addr, cfg.MongoDatabase, cfg.Timezone, cfg.MessengerEndpoint)
	return cfg
}

// LoadDotEnv loads .env into the environment when present. Existing variables win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf(".env の読み込みに失敗: %v", err)
	}
}

// StorageFromEnv reads the Mongo connection settings.
func StorageFromEnv() Storage {
	return Storage{
		MongoURI:           envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:      envOrDefault("MONGO_DB", "doner-finder"),
		ShopCollection:     envOrDefault("SHOP_COLLECTION", "shops"),
		ReviewCollection:   envOrDefault("REVIEW_COLLECTION", "reviews"),
		FavoriteCollection: envOrDefault("FAVORITE_COLLECTION", "favorites"),
		Timeout:            durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
	}
}

// FromEnv builds a Config from the process environment without touching .env files.
func FromEnv() (Config, error) {
	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		return Config{}, errors.New("AUTH_JWT_SECRET must be configured")
	}
	fingerprintSecret := strings.TrimSpace(os.Getenv("FINGERPRINT_SECRET"))
	if fingerprintSecret == "" {
		return Config{}, errors.New("FINGERPRINT_SECRET must be configured")
	}

	jwtConfigs := []JWTConfig{{
		Issuer: envOrDefault("AUTH_JWT_ISSUER", "doner-finder-auth"),
		Secret: []byte(secret),
	}}

	cfg := Config{
		Storage:              StorageFromEnv(),
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		Timezone:             envOrDefault("TIMEZONE", "Europe/Berlin"),
		ServerLog:            log.New(os.Stdout, "[doner-finder-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:           jwtConfigs,
		JWTAudience:          strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		FingerprintSecret:    []byte(fingerprintSecret),
		ReviewRatePerMinute:  floatOrDefault("REVIEW_RATE_PER_MINUTE", 3),
		ReviewRateBurst:      intOrDefault("REVIEW_RATE_BURST", 3),
		MessengerEndpoint:    strings.TrimRight(strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")), "/"),
		MessengerDestination: envOrDefault("MESSENGER_DESTINATION", "discord"),
		MessengerTimeout:     durationOrDefault("MESSENGER_TIMEOUT", 3*time.Second),
		AdminBaseURL:         strings.TrimRight(strings.TrimSpace(os.Getenv("ADMIN_BASE_URL")), "/"),
		HydrationConcurrency: intOrDefault("HYDRATION_CONCURRENCY", 8),
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func floatOrDefault(key string, fallback float64) float64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
