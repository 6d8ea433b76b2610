package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/invoicer/logger"
)

// OpenDuckDB opens the embedded DuckDB database file at dbPath, creating its
// directory if needed.
func OpenDuckDB(dbPath string) (*sql.DB, error) {
	log := logger.WithComponent("db")

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("database connected")
	return db, nil
}

// OpenPostgres creates a pgx connection pool for databaseURL.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	log := logger.WithComponent("db")

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	cfg := pool.Config().ConnConfig
	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("database connected")
	return pool, nil
}
