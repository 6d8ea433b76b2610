package store

import (
	"context"
	"os"
	"testing"

	"github.com/satheeshds/invoicer/db"
	"github.com/stretchr/testify/require"
)

// TestPostgres runs against INVOICER_TEST_DATABASE_URL and is skipped
// without it. The database should be empty.
func TestPostgres(t *testing.T) {
	url := os.Getenv("INVOICER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("INVOICER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := db.OpenPostgres(ctx, url)
	require.NoError(t, err)
	require.NoError(t, db.MigratePostgres(ctx, pool))
	_, err = pool.Exec(ctx, "TRUNCATE invoices, clients, settings")
	require.NoError(t, err)

	s := NewPostgres(pool)
	t.Cleanup(func() { s.Close() })

	runStoreContract(t, s)
}
