package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/apperrors"
)

// SecretKey signs access and refresh tokens. Set once by Load.
var SecretKey []byte

type Config struct {
	Port        string
	PhoneRegion string
	CORSOrigins []string

	Database DatabaseConfig
	Geocoder GeocoderConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type GeocoderConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Load reads .env (if present) and the process environment into an
// explicit Config. Missing credentials are a startup failure, not a
// per-request one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Println("no .env file found, relying on process environment")
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, &apperrors.ConfigError{Key: "JWT_SECRET_KEY"}
	}
	SecretKey = []byte(secret)

	apikey := os.Getenv("GEOCODER_APIKEY")
	if apikey == "" {
		return nil, &apperrors.ConfigError{Key: "GEOCODER_APIKEY"}
	}

	geocoderTimeout := 5 * time.Second
	if raw := os.Getenv("GEOCODER_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT %q: %w", raw, err)
		}
		geocoderTimeout = parsed
	}

	cfg := &Config{
		Port:        getEnv("PORT", ":8080"),
		PhoneRegion: getEnv("PHONE_REGION", "RU"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "foodcart"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Geocoder: GeocoderConfig{
			APIKey:  apikey,
			BaseURL: getEnv("GEOCODER_BASE_URL", "https://geocode-maps.yandex.ru/1.x"),
			Timeout: geocoderTimeout,
		},
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			cfg.CORSOrigins = append(cfg.CORSOrigins, strings.TrimSpace(origin))
		}
	}

	return cfg, nil
}

func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
