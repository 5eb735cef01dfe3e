package db

import (
	"database/sql"
	"fmt"
	"time"

	"crumbline-be/internal/config"
	"crumbline-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect opens the storefront's postgres pool and verifies it is
// reachable before anything is served from it.
func Connect(cfg *config.Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.L().Info("postgres connection established",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
		zap.String("sslmode", cfg.DBSSLMode),
	)
	return conn, nil
}
