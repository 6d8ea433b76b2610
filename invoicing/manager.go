package invoicing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/satheeshds/invoicer/logger"
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// numberAttempts is the first try plus the single retry after a uniqueness
// violation.
const numberAttempts = 2

// Manager owns the invoice lifecycle: creation with numbering and totals,
// duplication, edits and status transitions.
type Manager struct {
	invoices InvoiceRepository
	settings *SettingsStore
	clients  ClientDirectory

	quotaMode   QuotaMode
	quotaWindow QuotaWindow

	// clock is injected so numbering years and date stamps are deterministic in tests.
	clock func() time.Time
	log   zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithClients lets creation snapshot a client from the directory by id.
func WithClients(dir ClientDirectory) Option {
	return func(m *Manager) { m.clients = dir }
}

// WithQuota sets how the monthly cap is enforced.
func WithQuota(mode QuotaMode, window QuotaWindow) Option {
	return func(m *Manager) {
		m.quotaMode = mode
		m.quotaWindow = window
	}
}

func NewManager(invoices InvoiceRepository, settings *SettingsStore, opts ...Option) *Manager {
	m := &Manager{
		invoices:    invoices,
		settings:    settings,
		quotaMode:   QuotaWarn,
		quotaWindow: WindowCalendarMonth,
		clock:       time.Now,
		log:         logger.WithComponent("invoicing"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateResult is a created invoice plus its position against the monthly
// cap. Quota is nil when the check did not run.
type CreateResult struct {
	Invoice *models.Invoice `json:"invoice"`
	Quota   *QuotaStatus    `json:"quota,omitempty"`
}

// Create validates the input, computes totals, allocates the next number and
// persists the invoice.
func (m *Manager) Create(ctx context.Context, ownerID string, in models.InvoiceInput) (*CreateResult, error) {
	if err := m.snapshotClient(ctx, ownerID, &in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return nil, &ValidationError{Field: "client_name", Reason: "is required"}
	}

	status := models.StatusPending
	switch in.Status {
	case "", models.StatusPending:
	case models.StatusDraft:
		status = models.StatusDraft
	default:
		return nil, &ValidationError{Field: "status", Value: in.Status, Reason: "new invoices must be pending or draft"}
	}

	dueDate, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}

	settings, err := m.settings.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Stored with two decimals; totals must come from the stored value.
	discount := decimal.Zero
	if in.DiscountPercent != nil {
		discount = ClampDiscount(in.DiscountPercent.Round(2))
	}
	totals, err := ComputeTotals(in.Items, discount, settings.VATEnabled, settings.VATRate)
	if err != nil {
		return nil, err
	}

	existing, err := m.invoices.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStorage("list invoices", err)
	}

	now := m.clock()
	var quota *QuotaStatus
	if m.quotaMode != QuotaOff && status != models.StatusDraft {
		q := CheckQuota(existing, settings.MonthlyCap, totals.Total, m.quotaWindow, now)
		quota = &q
		if q.Exceeded {
			if m.quotaMode == QuotaBlock {
				return nil, q.Err()
			}
			m.log.Warn().
				Str("owner_id", ownerID).
				Str("would_be", q.WouldBe.StringFixed(2)).
				Str("cap", q.Cap.StringFixed(2)).
				Msg("invoice exceeds monthly cap")
		}
	}

	inv := &models.Invoice{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Date:            now,
		DueDate:         dueDate,
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientAddress:   strings.TrimSpace(in.ClientAddress),
		ClientTaxID:     strings.TrimSpace(in.ClientTaxID),
		Status:          status,
		Items:           append([]models.LineItem(nil), in.Items...),
		DiscountPercent: &discount,
		Subtotal:        totals.Subtotal,
		VATAmount:       totals.VATAmount,
		Total:           totals.Total,
		Notes:           nonEmpty(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	policy := PolicyFrom(*settings)
	for attempt := 1; ; attempt++ {
		inv.Number = NextNumber(ownerID, policy, existing, now)
		saved, err := m.invoices.Save(ctx, inv)
		if err == nil {
			m.log.Info().
				Str("owner_id", ownerID).
				Str("number", saved.Number).
				Str("total", saved.Total.StringFixed(2)).
				Msg("invoice created")
			return &CreateResult{Invoice: saved, Quota: quota}, nil
		}
		if !errors.Is(err, ErrDuplicateNumber) {
			return nil, wrapStorage("save invoice", err)
		}
		if attempt >= numberAttempts {
			return nil, &NumberConflictError{Number: inv.Number, Attempts: attempt}
		}
		m.log.Warn().Str("owner_id", ownerID).Str("number", inv.Number).Msg("invoice number taken, renumbering")
		if existing, err = m.invoices.FindByOwner(ctx, ownerID); err != nil {
			return nil, wrapStorage("list invoices", err)
		}
	}
}

// Get returns one invoice of the owner.
func (m *Manager) Get(ctx context.Context, ownerID, id string) (*models.Invoice, error) {
	inv, err := m.invoices.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, wrapStorage("find invoice", err)
	}
	return inv, nil
}

// List returns every invoice of the owner, unfiltered.
func (m *Manager) List(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	invs, err := m.invoices.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStorage("list invoices", err)
	}
	return invs, nil
}

// Duplicate returns a creation input copied from an existing invoice.
func (m *Manager) Duplicate(ctx context.Context, ownerID, id string) (*models.InvoiceInput, error) {
	src, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	in := DuplicateInput(*src)
	return &in, nil
}

// UpdateStatus moves an invoice along the lifecycle table. On failure the
// stored invoice is left unchanged.
func (m *Manager) UpdateStatus(ctx context.Context, ownerID, id string, to models.Status) (*models.Invoice, error) {
	if !to.Valid() {
		return nil, &ValidationError{Field: "status", Value: to, Reason: "unknown status"}
	}
	inv, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	from := inv.Status.OrPending()
	if !CanTransition(from, to) {
		return nil, &InvalidTransitionError{InvoiceID: id, From: from, To: to}
	}
	inv.Status = to
	inv.UpdatedAt = m.clock()
	saved, err := m.invoices.Save(ctx, inv)
	if err != nil {
		return nil, wrapStorage("save invoice", err)
	}
	m.log.Info().Str("owner_id", ownerID).Str("number", saved.Number).
		Str("from", string(from)).Str("to", string(to)).Msg("invoice status changed")
	return saved, nil
}

// Update edits the mutable fields. Items, discount, number and date are fixed
// at creation; a status in the patch equal to the current one is ignored.
func (m *Manager) Update(ctx context.Context, ownerID, id string, patch models.InvoicePatch) (*models.Invoice, error) {
	inv, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientName != nil {
		name := strings.TrimSpace(*patch.ClientName)
		if name == "" {
			return nil, &ValidationError{Field: "client_name", Reason: "is required"}
		}
		inv.ClientName = name
	}
	if patch.ClientAddress != nil {
		inv.ClientAddress = strings.TrimSpace(*patch.ClientAddress)
	}
	if patch.ClientTaxID != nil {
		inv.ClientTaxID = strings.TrimSpace(*patch.ClientTaxID)
	}
	if patch.Notes != nil {
		inv.Notes = nonEmpty(patch.Notes)
	}
	if patch.DueDate != nil {
		due, err := parseDate("due_date", patch.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = due
	}
	if patch.Status != nil {
		to := *patch.Status
		from := inv.Status.OrPending()
		if to != from {
			if !to.Valid() {
				return nil, &ValidationError{Field: "status", Value: to, Reason: "unknown status"}
			}
			if !CanTransition(from, to) {
				return nil, &InvalidTransitionError{InvoiceID: id, From: from, To: to}
			}
			inv.Status = to
		}
	}

	inv.UpdatedAt = m.clock()
	saved, err := m.invoices.Save(ctx, inv)
	if err != nil {
		return nil, wrapStorage("save invoice", err)
	}
	return saved, nil
}

// Delete removes the invoice permanently.
func (m *Manager) Delete(ctx context.Context, ownerID, id string) error {
	if err := m.invoices.Delete(ctx, ownerID, id); err != nil {
		return wrapStorage("delete invoice", err)
	}
	m.log.Info().Str("owner_id", ownerID).Str("invoice_id", id).Msg("invoice deleted")
	return nil
}

// Quota reports the owner's current window usage without a new amount.
func (m *Manager) Quota(ctx context.Context, ownerID string) (*QuotaStatus, error) {
	settings, err := m.settings.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	invs, err := m.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	q := CheckQuota(invs, settings.MonthlyCap, decimal.Zero, m.quotaWindow, m.clock())
	return &q, nil
}

// snapshotClient fills empty client fields from the directory entry.
func (m *Manager) snapshotClient(ctx context.Context, ownerID string, in *models.InvoiceInput) error {
	if in.ClientID == nil || *in.ClientID == "" {
		return nil
	}
	if m.clients == nil {
		return &ValidationError{Field: "client_id", Value: *in.ClientID, Reason: "client directory is not available"}
	}
	c, err := m.clients.FindClient(ctx, ownerID, *in.ClientID)
	if errors.Is(err, ErrNotFound) {
		return &ValidationError{Field: "client_id", Value: *in.ClientID, Reason: "unknown client"}
	}
	if err != nil {
		return wrapStorage("find client", err)
	}
	if in.ClientName == "" {
		in.ClientName = c.Name
	}
	if in.ClientAddress == "" {
		in.ClientAddress = c.Address
	}
	if in.ClientTaxID == "" {
		in.ClientTaxID = c.TaxID
	}
	return nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, &ValidationError{Field: field, Value: *s, Reason: "must be a YYYY-MM-DD date"}
	}
	return &t, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
