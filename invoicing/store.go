package invoicing

import (
	"context"

	"github.com/satheeshds/invoicer/models"
)

// The persistence ports live here so the store implementations can import
// this package for the sentinels without a cycle.

// InvoiceRepository persists invoices. Implementations must enforce
// uniqueness of (owner, number) and report it as ErrDuplicateNumber, and a
// failed Save must leave the previously stored record untouched.
type InvoiceRepository interface {
	FindByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error)
	// FindByID returns ErrNotFound when the invoice does not exist or belongs
	// to another owner.
	FindByID(ctx context.Context, ownerID, id string) (*models.Invoice, error)
	// Save inserts or replaces the invoice with inv.ID.
	Save(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// SettingsRepository persists the one settings record per owner.
type SettingsRepository interface {
	FindSettings(ctx context.Context, ownerID string) (*models.Settings, error)
	// InsertSettings returns ErrDuplicate if the owner already has a record.
	InsertSettings(ctx context.Context, s *models.Settings) error
	SaveSettings(ctx context.Context, s *models.Settings) error
}

// ClientDirectory supplies client details to snapshot into new invoices.
type ClientDirectory interface {
	FindClient(ctx context.Context, ownerID, id string) (*models.Client, error)
}
