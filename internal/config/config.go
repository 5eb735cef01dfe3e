package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// CatalogStatic serves the built-in menu instead of postgres; orders
	// are then accepted by the in-memory backend as well.
	CatalogStatic bool

	// SessionTTL is how long an idle visitor session (cart + checkout
	// state) is kept before the sweeper reaps it.
	SessionTTL time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		AppPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        os.Getenv("APP_ENV"),
		JWTSecret:     os.Getenv("SECRET_KEY"),
		CatalogStatic: os.Getenv("CATALOG_STATIC") == "true",
		SessionTTL:    getDuration("SESSION_TTL", 30*time.Minute),
	}

	if !cfg.CatalogStatic && cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
