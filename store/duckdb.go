package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// DuckDB stores everything in an embedded DuckDB file through database/sql.
type DuckDB struct {
	db *sql.DB
}

func NewDuckDB(db *sql.DB) *DuckDB {
	return &DuckDB{db: db}
}

// Money columns are read back as text so decimal.Decimal can scan them
// without depending on the driver's DECIMAL representation.
const duckInvoiceSelectQuery = `SELECT id, owner_id, number, date, due_date,
		client_name, client_address, client_tax_id, status, items,
		CAST(discount_percent AS VARCHAR), CAST(subtotal AS VARCHAR), CAST(vat_amount AS VARCHAR), CAST(total AS VARCHAR),
		notes, created_at, updated_at
		FROM invoices`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var (
		inv      models.Invoice
		due      sql.NullTime
		items    []byte
		discount decimal.NullDecimal
		status   string
	)
	err := scanner.Scan(&inv.ID, &inv.OwnerID, &inv.Number, &inv.Date, &due,
		&inv.ClientName, &inv.ClientAddress, &inv.ClientTaxID, &status, &items,
		&discount, &inv.Subtotal, &inv.VATAmount, &inv.Total,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return inv, err
	}
	inv.Status = models.Status(status)
	if due.Valid {
		d := due.Time
		inv.DueDate = &d
	}
	if discount.Valid {
		d := discount.Decimal
		inv.DiscountPercent = &d
	}
	inv.Items, err = decodeItems(items)
	return inv, err
}

func (s *DuckDB) FindByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, duckInvoiceSelectQuery+" WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *DuckDB) FindByID(ctx context.Context, ownerID, id string) (*models.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx, duckInvoiceSelectQuery+" WHERE id = ? AND owner_id = ?", id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Save updates the mutable columns of an existing invoice, or inserts it.
// Number, date, items and amounts are written only on insert.
func (s *DuckDB) Save(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE invoices SET client_name = ?, client_address = ?, client_tax_id = ?,
		status = ?, due_date = ?, notes = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		inv.ClientName, inv.ClientAddress, inv.ClientTaxID,
		string(inv.Status), nullTime(inv.DueDate), inv.Notes, inv.UpdatedAt.UTC(), inv.ID, inv.OwnerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		items, err := encodeItems(inv.Items)
		if err != nil {
			return nil, err
		}
		_, err = s.db.ExecContext(ctx, `INSERT INTO invoices (id, owner_id, number, date, due_date,
			client_name, client_address, client_tax_id, status, items,
			discount_percent, subtotal, vat_amount, total, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			CAST(? AS DECIMAL(5,2)), CAST(? AS DECIMAL(18,2)), CAST(? AS DECIMAL(18,2)), CAST(? AS DECIMAL(18,2)), ?, ?, ?)`,
			inv.ID, inv.OwnerID, inv.Number, inv.Date.UTC(), nullTime(inv.DueDate),
			inv.ClientName, inv.ClientAddress, inv.ClientTaxID, string(inv.Status), items,
			nullDecimal(inv.DiscountPercent), inv.Subtotal.String(), inv.VATAmount.String(), inv.Total.String(),
			inv.Notes, inv.CreatedAt.UTC(), inv.UpdatedAt.UTC())
		if err != nil {
			return nil, duckConstraint(err)
		}
	}
	return s.FindByID(ctx, inv.OwnerID, inv.ID)
}

func (s *DuckDB) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invoicing.ErrNotFound
	}
	return nil
}

const duckSettingsSelectQuery = `SELECT owner_id, company_name, company_address, company_tax_id, logo_data_url,
		vat_enabled, CAST(vat_rate AS VARCHAR), currency, numbering_prefix, zero_padding,
		reset_number_yearly, business_type, CAST(monthly_cap AS VARCHAR), updated_at
		FROM settings`

func scanSettings(scanner interface{ Scan(...any) error }) (models.Settings, error) {
	var st models.Settings
	var bt string
	err := scanner.Scan(&st.OwnerID, &st.CompanyName, &st.CompanyAddress, &st.CompanyTaxID, &st.LogoDataURL,
		&st.VATEnabled, &st.VATRate, &st.Currency, &st.NumberingPrefix, &st.ZeroPadding,
		&st.ResetNumberYearly, &bt, &st.MonthlyCap, &st.UpdatedAt)
	st.BusinessType = models.BusinessType(bt)
	return st, err
}

func (s *DuckDB) FindSettings(ctx context.Context, ownerID string) (*models.Settings, error) {
	st, err := scanSettings(s.db.QueryRowContext(ctx, duckSettingsSelectQuery+" WHERE owner_id = ?", ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const duckSettingsInsert = `INSERT INTO settings (owner_id, company_name, company_address, company_tax_id, logo_data_url,
		vat_enabled, vat_rate, currency, numbering_prefix, zero_padding,
		reset_number_yearly, business_type, monthly_cap, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CAST(? AS DECIMAL(7,4)), ?, ?, ?, ?, ?, CAST(? AS DECIMAL(18,2)), ?)`

func settingsArgs(st *models.Settings) []any {
	return []any{st.OwnerID, st.CompanyName, st.CompanyAddress, st.CompanyTaxID, st.LogoDataURL,
		st.VATEnabled, st.VATRate.String(), st.Currency, st.NumberingPrefix, st.ZeroPadding,
		st.ResetNumberYearly, string(st.BusinessType), st.MonthlyCap.String(), st.UpdatedAt.UTC()}
}

func (s *DuckDB) InsertSettings(ctx context.Context, st *models.Settings) error {
	if _, err := s.db.ExecContext(ctx, duckSettingsInsert, settingsArgs(st)...); err != nil {
		return duckConstraint(err)
	}
	return nil
}

func (s *DuckDB) SaveSettings(ctx context.Context, st *models.Settings) error {
	_, err := s.db.ExecContext(ctx, duckSettingsInsert+` ON CONFLICT (owner_id) DO UPDATE SET
		company_name = EXCLUDED.company_name, company_address = EXCLUDED.company_address,
		company_tax_id = EXCLUDED.company_tax_id, logo_data_url = EXCLUDED.logo_data_url,
		vat_enabled = EXCLUDED.vat_enabled, vat_rate = EXCLUDED.vat_rate, currency = EXCLUDED.currency,
		numbering_prefix = EXCLUDED.numbering_prefix, zero_padding = EXCLUDED.zero_padding,
		reset_number_yearly = EXCLUDED.reset_number_yearly, business_type = EXCLUDED.business_type,
		monthly_cap = EXCLUDED.monthly_cap, updated_at = EXCLUDED.updated_at`, settingsArgs(st)...)
	return err
}

const duckClientSelectQuery = `SELECT id, owner_id, name, address, tax_id, created_at, updated_at FROM clients`

func scanClient(scanner interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := scanner.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.TaxID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *DuckDB) ListClients(ctx context.Context, ownerID, search string) ([]models.Client, error) {
	query := duckClientSelectQuery + " WHERE owner_id = ?"
	args := []any{ownerID}
	if search != "" {
		query += " AND (name ILIKE ? OR address ILIKE ? OR tax_id ILIKE ?)"
		q := "%" + search + "%"
		args = append(args, q, q, q)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *DuckDB) FindClient(ctx context.Context, ownerID, id string) (*models.Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, duckClientSelectQuery+" WHERE id = ? AND owner_id = ?", id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DuckDB) SaveClient(ctx context.Context, c *models.Client) error {
	res, err := s.db.ExecContext(ctx, "UPDATE clients SET name = ?, address = ?, tax_id = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		c.Name, c.Address, c.TaxID, c.UpdatedAt.UTC(), c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO clients (id, owner_id, name, address, tax_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.OwnerID, c.Name, c.Address, c.TaxID, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return duckConstraint(err)
}

func (s *DuckDB) DeleteClient(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invoicing.ErrNotFound
	}
	return nil
}

func (s *DuckDB) Close() error { return s.db.Close() }

// duckConstraint maps DuckDB's constraint messages, e.g.
// `Duplicate key "owner_id: o1, number: INV-2024-0001" violates unique constraint`.
func duckConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "Duplicate key") {
		return err
	}
	if strings.Contains(msg, "number:") {
		return fmt.Errorf("%w: %v", invoicing.ErrDuplicateNumber, err)
	}
	return fmt.Errorf("%w: %v", invoicing.ErrDuplicate, err)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
