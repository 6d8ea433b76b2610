// Package store implements the invoicing repositories on top of memory,
// DuckDB and Postgres.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
)

// Store is everything a backend provides.
type Store interface {
	invoicing.InvoiceRepository
	invoicing.SettingsRepository
	ClientStore
	Close() error
}

// ClientStore is the client directory CRUD. It satisfies
// invoicing.ClientDirectory.
type ClientStore interface {
	ListClients(ctx context.Context, ownerID, search string) ([]models.Client, error)
	FindClient(ctx context.Context, ownerID, id string) (*models.Client, error)
	SaveClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, ownerID, id string) error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*DuckDB)(nil)
	_ Store = (*Postgres)(nil)
)

func matchesClient(c models.Client, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.TaxID), q) ||
		strings.Contains(strings.ToLower(c.Address), q)
}

// Line items are stored as one JSON document per invoice.
func encodeItems(items []models.LineItem) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return string(b), nil
}

func decodeItems(raw []byte) ([]models.LineItem, error) {
	items := []models.LineItem{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}
