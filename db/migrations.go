package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/satheeshds/invoicer/logger"
)

//go:embed migrations/*.sql
var postgresMigrations embed.FS

// Migrate runs the DuckDB table creation statements. Safe to call multiple
// times due to IF NOT EXISTS clauses.
func Migrate(db *sql.DB) error {
	log := logger.WithComponent("db")
	log.Info().Msg("running database migrations")

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}

	log.Info().Msg("database migrations complete")
	return nil
}

// MigratePostgres applies the embedded goose migrations through a
// database/sql handle borrowed from the pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	log := logger.WithComponent("db")
	log.Info().Msg("running postgres migrations")

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(postgresMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.Info().Msg("postgres migrations complete")
	return nil
}

var migrations = []string{
	// One settings row per owner
	`CREATE TABLE IF NOT EXISTS settings (
		owner_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL DEFAULT '',
		company_address TEXT NOT NULL DEFAULT '',
		company_tax_id TEXT NOT NULL DEFAULT '',
		logo_data_url TEXT NOT NULL DEFAULT '',
		vat_enabled BOOLEAN NOT NULL DEFAULT true,
		vat_rate DECIMAL(7,4) NOT NULL DEFAULT 0.20,
		currency TEXT NOT NULL DEFAULT 'DH',
		numbering_prefix TEXT NOT NULL DEFAULT 'INV',
		zero_padding INTEGER NOT NULL DEFAULT 4,
		reset_number_yearly BOOLEAN NOT NULL DEFAULT true,
		business_type TEXT NOT NULL DEFAULT 'services' CHECK(business_type IN ('services', 'commerce')),
		monthly_cap DECIMAL(18,2) NOT NULL DEFAULT 200000,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Client directory
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		tax_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Invoices: items are a JSON array, client fields are a snapshot
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		number TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		due_date DATE,
		client_name TEXT NOT NULL,
		client_address TEXT NOT NULL DEFAULT '',
		client_tax_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('draft', 'pending', 'paid', 'overdue', 'cancelled')),
		items TEXT NOT NULL,
		discount_percent DECIMAL(5,2),
		subtotal DECIMAL(18,2) NOT NULL,
		vat_amount DECIMAL(18,2) NOT NULL DEFAULT 0,
		total DECIMAL(18,2) NOT NULL,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (owner_id, number)
	)`,

	// Indexes for common queries
	`CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_owner ON invoices(owner_id)`,
}
