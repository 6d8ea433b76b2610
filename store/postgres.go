package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation      = "23505"
	pgInvoiceNumberUniqKey = "invoices_owner_number_key"
)

// Postgres is the pgx-backed store for multi-instance deployments.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const pgInvoiceSelectQuery = `SELECT id, owner_id, number, date, due_date,
		client_name, client_address, client_tax_id, status, items::text,
		discount_percent::text, subtotal::text, vat_amount::text, total::text,
		notes, created_at, updated_at
		FROM invoices`

func (s *Postgres) FindByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	rows, err := s.pool.Query(ctx, pgInvoiceSelectQuery+" WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanPgInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func scanPgInvoice(row pgx.Row) (models.Invoice, error) {
	var (
		inv      models.Invoice
		items    string
		status   string
		discount *string
		subtotal string
		vat      string
		total    string
	)
	err := row.Scan(&inv.ID, &inv.OwnerID, &inv.Number, &inv.Date, &inv.DueDate,
		&inv.ClientName, &inv.ClientAddress, &inv.ClientTaxID, &status, &items,
		&discount, &subtotal, &vat, &total,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return inv, err
	}
	inv.Status = models.Status(status)
	if discount != nil {
		d, err := decimal.NewFromString(*discount)
		if err != nil {
			return inv, fmt.Errorf("discount_percent: %w", err)
		}
		inv.DiscountPercent = &d
	}
	for _, m := range []struct {
		raw string
		dst *decimal.Decimal
	}{{subtotal, &inv.Subtotal}, {vat, &inv.VATAmount}, {total, &inv.Total}} {
		if *m.dst, err = decimal.NewFromString(m.raw); err != nil {
			return inv, err
		}
	}
	inv.Items, err = decodeItems([]byte(items))
	return inv, err
}

func (s *Postgres) FindByID(ctx context.Context, ownerID, id string) (*models.Invoice, error) {
	inv, err := scanPgInvoice(s.pool.QueryRow(ctx, pgInvoiceSelectQuery+" WHERE id = $1 AND owner_id = $2", id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Save upserts by id. On conflict only the mutable columns change, and only
// when the stored row belongs to the same owner.
func (s *Postgres) Save(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return nil, err
	}
	var discount *string
	if inv.DiscountPercent != nil {
		d := inv.DiscountPercent.String()
		discount = &d
	}

	var id string
	err = s.pool.QueryRow(ctx, `INSERT INTO invoices (id, owner_id, number, date, due_date,
			client_name, client_address, client_tax_id, status, items,
			discount_percent, subtotal, vat_amount, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb,
			$11::numeric, $12::numeric, $13::numeric, $14::numeric, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			client_name = EXCLUDED.client_name, client_address = EXCLUDED.client_address,
			client_tax_id = EXCLUDED.client_tax_id, status = EXCLUDED.status,
			due_date = EXCLUDED.due_date, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
		WHERE invoices.owner_id = EXCLUDED.owner_id
		RETURNING id`,
		inv.ID, inv.OwnerID, inv.Number, inv.Date, inv.DueDate,
		inv.ClientName, inv.ClientAddress, inv.ClientTaxID, string(inv.Status), items,
		discount, inv.Subtotal.String(), inv.VATAmount.String(), inv.Total.String(),
		inv.Notes, inv.CreatedAt, inv.UpdatedAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, pgConstraint(err)
	}
	return s.FindByID(ctx, inv.OwnerID, id)
}

func (s *Postgres) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM invoices WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invoicing.ErrNotFound
	}
	return nil
}

const pgSettingsSelectQuery = `SELECT owner_id, company_name, company_address, company_tax_id, logo_data_url,
		vat_enabled, vat_rate::text, currency, numbering_prefix, zero_padding,
		reset_number_yearly, business_type, monthly_cap::text, updated_at
		FROM settings`

func (s *Postgres) FindSettings(ctx context.Context, ownerID string) (*models.Settings, error) {
	var (
		st       models.Settings
		bt       string
		rate     string
		monthCap string
	)
	err := s.pool.QueryRow(ctx, pgSettingsSelectQuery+" WHERE owner_id = $1", ownerID).Scan(
		&st.OwnerID, &st.CompanyName, &st.CompanyAddress, &st.CompanyTaxID, &st.LogoDataURL,
		&st.VATEnabled, &rate, &st.Currency, &st.NumberingPrefix, &st.ZeroPadding,
		&st.ResetNumberYearly, &bt, &monthCap, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	st.BusinessType = models.BusinessType(bt)
	if st.VATRate, err = decimal.NewFromString(rate); err != nil {
		return nil, err
	}
	if st.MonthlyCap, err = decimal.NewFromString(monthCap); err != nil {
		return nil, err
	}
	return &st, nil
}

const pgSettingsInsert = `INSERT INTO settings (owner_id, company_name, company_address, company_tax_id, logo_data_url,
		vat_enabled, vat_rate, currency, numbering_prefix, zero_padding,
		reset_number_yearly, business_type, monthly_cap, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10, $11, $12, $13::numeric, $14)`

func (s *Postgres) InsertSettings(ctx context.Context, st *models.Settings) error {
	if _, err := s.pool.Exec(ctx, pgSettingsInsert, settingsArgs(st)...); err != nil {
		return pgConstraint(err)
	}
	return nil
}

func (s *Postgres) SaveSettings(ctx context.Context, st *models.Settings) error {
	_, err := s.pool.Exec(ctx, pgSettingsInsert+` ON CONFLICT (owner_id) DO UPDATE SET
		company_name = EXCLUDED.company_name, company_address = EXCLUDED.company_address,
		company_tax_id = EXCLUDED.company_tax_id, logo_data_url = EXCLUDED.logo_data_url,
		vat_enabled = EXCLUDED.vat_enabled, vat_rate = EXCLUDED.vat_rate, currency = EXCLUDED.currency,
		numbering_prefix = EXCLUDED.numbering_prefix, zero_padding = EXCLUDED.zero_padding,
		reset_number_yearly = EXCLUDED.reset_number_yearly, business_type = EXCLUDED.business_type,
		monthly_cap = EXCLUDED.monthly_cap, updated_at = EXCLUDED.updated_at`, settingsArgs(st)...)
	return err
}

const pgClientSelectQuery = `SELECT id, owner_id, name, address, tax_id, created_at, updated_at FROM clients`

func (s *Postgres) ListClients(ctx context.Context, ownerID, search string) ([]models.Client, error) {
	query := pgClientSelectQuery + " WHERE owner_id = $1"
	args := []any{ownerID}
	if search != "" {
		query += " AND (name ILIKE $2 OR address ILIKE $2 OR tax_id ILIKE $2)"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"

	rows, err := s.pool.Query(ctx, query, args...)
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

func (s *Postgres) FindClient(ctx context.Context, ownerID, id string) (*models.Client, error) {
	c, err := scanClient(s.pool.QueryRow(ctx, pgClientSelectQuery+" WHERE id = $1 AND owner_id = $2", id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invoicing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Postgres) SaveClient(ctx context.Context, c *models.Client) error {
	tag, err := s.pool.Exec(ctx, `INSERT INTO clients (id, owner_id, name, address, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address,
			tax_id = EXCLUDED.tax_id, updated_at = EXCLUDED.updated_at
		WHERE clients.owner_id = EXCLUDED.owner_id`,
		c.ID, c.OwnerID, c.Name, c.Address, c.TaxID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return pgConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return invoicing.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteClient(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM clients WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invoicing.ErrNotFound
	}
	return nil
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func pgConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	if pgErr.ConstraintName == pgInvoiceNumberUniqKey {
		return fmt.Errorf("%w: %v", invoicing.ErrDuplicateNumber, err)
	}
	return fmt.Errorf("%w: %v", invoicing.ErrDuplicate, err)
}
