// Package db opens and migrates the embedded SQLite event store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectionConfig holds database connection pool configuration. SQLite is
// single-writer, so MaxOpenConns stays small regardless of environment
// overrides; readers still benefit from a handful of idle connections.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates and configures the event store connection pool. It reads
// EVENT_STORE_PATH from the environment (falling back to a local file) and
// enables WAL journaling so the ingest cycle's writer doesn't block digest
// reads.
func Open() *sql.DB {
	path := os.Getenv("EVENT_STORE_PATH")
	if path == "" {
		path = "./data/events.db"
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatal(err)
	}

	cfg := DefaultConnectionConfig()
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	database.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("event store connection pool configured",
		slog.String("path", path),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping event store: %v", err)
	}

	slog.Info("event store connection established successfully")
	return database
}
