package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries everything the process needs at startup. DatabaseURL,
// TokenSecret and StripeSecretKey have no defaults: the process refuses to
// start without them.
type Config struct {
	Port            string
	DatabaseURL     string
	TokenSecret     string
	StripeSecretKey string
	CORSOrigins     []string
	KafkaBrokers    []string
	ServiceName     string
}

const (
	defaultPort        = "5000"
	defaultCORSOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	defaultServiceName = "inventory-api"
)

func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", defaultPort),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TokenSecret:     os.Getenv("ACCESS_TOKEN_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		CORSOrigins:     splitCSV(getenv("CORS_ORIGINS", defaultCORSOrigins)),
		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		ServiceName:     getenv("SERVICE_NAME", defaultServiceName),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
