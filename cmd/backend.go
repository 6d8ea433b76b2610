package cmd

import (
	"context"
	"fmt"

	"github.com/satheeshds/invoicer/config"
	"github.com/satheeshds/invoicer/db"
	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/logger"
	"github.com/satheeshds/invoicer/store"
)

// backend is the configured store with the engine wired on top of it.
type backend struct {
	store    store.Store
	settings *invoicing.SettingsStore
	invoices *invoicing.Manager
}

func (b *backend) Close() error { return b.store.Close() }

// openStore opens the configured driver and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	log := logger.WithComponent("backend")

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return store.NewMemory(), nil

	case config.DriverDuckDB:
		database, err := db.OpenDuckDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, err
		}
		return store.NewDuckDB(database), nil

	case config.DriverPostgres:
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return store.NewPostgres(pool), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	settings := invoicing.NewSettingsStore(st)
	return &backend{
		store:    st,
		settings: settings,
		invoices: invoicing.NewManager(st, settings,
			invoicing.WithClients(st),
			invoicing.WithQuota(cfg.QuotaMode, cfg.QuotaWindow),
		),
	}, nil
}
