package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockInvoiceRepo keeps invoices in a map and lets tests inject failures.
type mockInvoiceRepo struct {
	invoices map[string]models.Invoice

	// duplicateSaves makes the next n inserts fail with ErrDuplicateNumber,
	// each time after a competing invoice took the number.
	duplicateSaves int
	saveErr        error
	findErr        error
	saves          int
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{invoices: map[string]models.Invoice{}}
}

func (m *mockInvoiceRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Invoice
	for _, inv := range m.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, inv.Clone())
		}
	}
	return out, nil
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, ownerID, id string) (*models.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	c := inv.Clone()
	return &c, nil
}

func (m *mockInvoiceRepo) Save(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	m.saves++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if _, exists := m.invoices[inv.ID]; !exists && m.duplicateSaves > 0 {
		m.duplicateSaves--
		rival := models.Invoice{ID: "rival-" + inv.Number, OwnerID: inv.OwnerID, Number: inv.Number}
		m.invoices[rival.ID] = rival
		return nil, ErrDuplicateNumber
	}
	for id, other := range m.invoices {
		if id != inv.ID && other.OwnerID == inv.OwnerID && other.Number == inv.Number {
			return nil, ErrDuplicateNumber
		}
	}
	m.invoices[inv.ID] = inv.Clone()
	c := inv.Clone()
	return &c, nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, ownerID, id string) error {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

type mockClients map[string]models.Client

func (m mockClients) FindClient(ctx context.Context, ownerID, id string) (*models.Client, error) {
	c, ok := m[id]
	if !ok || c.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &c, nil
}

var testNow = time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)

func newTestManager(repo *mockInvoiceRepo, opts ...Option) *Manager {
	settings := NewSettingsStore(newMockSettingsRepo())
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewManager(repo, settings, opts...)
}

func designInput(discount string) models.InvoiceInput {
	d := decimal.RequireFromString(discount)
	return models.InvoiceInput{
		ClientName:      "Acme",
		Items:           []models.LineItem{item("Design", "2", "500")},
		DiscountPercent: &d,
	}
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()
	repo := newMockInvoiceRepo()
	m := newTestManager(repo)

	res, err := m.Create(ctx, "o1", designInput("10"))
	require.NoError(t, err)
	inv := res.Invoice
	assert.Equal(t, "INV-2024-0001", inv.Number)
	assert.Equal(t, models.StatusPending, inv.Status)
	assert.Equal(t, testNow, inv.Date)
	assertMoney(t, "900.00", inv.Subtotal, "subtotal")
	assertMoney(t, "180.00", inv.VATAmount, "vat")
	assertMoney(t, "1080.00", inv.Total, "total")
	assert.NotEmpty(t, inv.ID)
	require.NotNil(t, res.Quota)
	assert.False(t, res.Quota.Exceeded)

	res, err = m.Create(ctx, "o1", designInput("0"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0002", res.Invoice.Number)

	res, err = m.Create(ctx, "o2", designInput("0"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", res.Invoice.Number, "numbering is per owner")
}

func TestManager_CreateRoundsDiscount(t *testing.T) {
	repo := newMockInvoiceRepo()
	m := newTestManager(repo)

	in := designInput("12.345")
	in.Items = []models.LineItem{item("Audit", "1", "1000")}
	res, err := m.Create(context.Background(), "o1", in)
	require.NoError(t, err)

	inv := res.Invoice
	require.NotNil(t, inv.DiscountPercent)
	assert.Equal(t, "12.35", inv.DiscountPercent.String())
	assertMoney(t, "876.50", inv.Subtotal, "subtotal")

	again, err := ComputeTotals(inv.Items, *inv.DiscountPercent, true, decimal.RequireFromString("0.20"))
	require.NoError(t, err)
	assertMoney(t, inv.Subtotal.String(), again.Subtotal, "recomputed subtotal")
	assertMoney(t, inv.Total.String(), again.Total, "recomputed total")
}

func TestManager_CreateValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMockInvoiceRepo())

	tests := []struct {
		name  string
		input func() models.InvoiceInput
		field string
	}{
		{"missing client name", func() models.InvoiceInput { in := designInput("0"); in.ClientName = "  "; return in }, "client_name"},
		{"no items", func() models.InvoiceInput { in := designInput("0"); in.Items = nil; return in }, "items"},
		{"paid on creation", func() models.InvoiceInput { in := designInput("0"); in.Status = models.StatusPaid; return in }, "status"},
		{"bad due date", func() models.InvoiceInput {
			in := designInput("0")
			d := "15/04/2024"
			in.DueDate = &d
			return in
		}, "due_date"},
		{"unknown client", func() models.InvoiceInput {
			in := designInput("0")
			id := "nope"
			in.ClientID = &id
			return in
		}, "client_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(ctx, "o1", tt.input())
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestManager_CreateDraft(t *testing.T) {
	m := newTestManager(newMockInvoiceRepo(), WithQuota(QuotaBlock, WindowCalendarMonth))
	in := designInput("0")
	in.Status = models.StatusDraft
	big := decimal.NewFromInt(10000000)
	in.Items[0].UnitPrice = big

	res, err := m.Create(context.Background(), "o1", in)
	require.NoError(t, err, "drafts are not checked against the cap")
	assert.Equal(t, models.StatusDraft, res.Invoice.Status)
	assert.Nil(t, res.Quota)
}

func TestManager_CreateSnapshotsClient(t *testing.T) {
	ctx := context.Background()
	clients := mockClients{"c1": {ID: "c1", OwnerID: "o1", Name: "Globex", Address: "2 Side St", TaxID: "ICE9"}}
	m := newTestManager(newMockInvoiceRepo(), WithClients(clients))

	in := designInput("0")
	in.ClientName = ""
	id := "c1"
	in.ClientID = &id
	res, err := m.Create(ctx, "o1", in)
	require.NoError(t, err)
	assert.Equal(t, "Globex", res.Invoice.ClientName)
	assert.Equal(t, "2 Side St", res.Invoice.ClientAddress)
	assert.Equal(t, "ICE9", res.Invoice.ClientTaxID)

	// Later directory edits do not reach the issued invoice.
	clients["c1"] = models.Client{ID: "c1", OwnerID: "o1", Name: "Renamed"}
	got, err := m.Get(ctx, "o1", res.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.ClientName)

	// Explicit fields win over the directory.
	in.ClientName = "Override"
	res, err = m.Create(ctx, "o1", in)
	require.NoError(t, err)
	assert.Equal(t, "Override", res.Invoice.ClientName)
}

func TestManager_CreateRetriesNumberOnce(t *testing.T) {
	repo := newMockInvoiceRepo()
	repo.duplicateSaves = 1
	m := newTestManager(repo)

	res, err := m.Create(context.Background(), "o1", designInput("0"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0002", res.Invoice.Number, "renumbered past the rival")
	assert.Equal(t, 2, repo.saves)
}

func TestManager_CreateNumberConflict(t *testing.T) {
	repo := newMockInvoiceRepo()
	repo.duplicateSaves = 2
	m := newTestManager(repo)

	_, err := m.Create(context.Background(), "o1", designInput("0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNumberConflict))

	var ce *NumberConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "INV-2024-0002", ce.Number)
	assert.Equal(t, 2, ce.Attempts)
	assert.Equal(t, 2, repo.saves)
}

func TestManager_CreateStorageError(t *testing.T) {
	repo := newMockInvoiceRepo()
	repo.saveErr = errors.New("connection refused")
	m := newTestManager(repo)

	_, err := m.Create(context.Background(), "o1", designInput("0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))
	assert.Empty(t, repo.invoices)
}

func TestManager_CreateQuota(t *testing.T) {
	ctx := context.Background()
	capTo := func(m *Manager, amount string) {
		c := decimal.RequireFromString(amount)
		_, err := m.settings.Update(ctx, "o1", models.SettingsPatch{MonthlyCap: &c})
		require.NoError(t, err)
	}

	t.Run("block rejects before numbering", func(t *testing.T) {
		repo := newMockInvoiceRepo()
		m := newTestManager(repo, WithQuota(QuotaBlock, WindowCalendarMonth))
		capTo(m, "1000")

		_, err := m.Create(ctx, "o1", designInput("10")) // 1080
		require.Error(t, err)
		var qe *QuotaExceededError
		require.True(t, errors.As(err, &qe))
		assertMoney(t, "80", qe.Over, "over")
		assertMoney(t, "1080", qe.WouldBe, "would be")
		assert.Zero(t, repo.saves)
	})

	t.Run("warn creates and reports", func(t *testing.T) {
		m := newTestManager(newMockInvoiceRepo(), WithQuota(QuotaWarn, WindowCalendarMonth))
		capTo(m, "1000")

		res, err := m.Create(ctx, "o1", designInput("10"))
		require.NoError(t, err)
		require.NotNil(t, res.Quota)
		assert.True(t, res.Quota.Exceeded)
		assertMoney(t, "80", res.Quota.Over, "over")
	})

	t.Run("off skips the check", func(t *testing.T) {
		m := newTestManager(newMockInvoiceRepo(), WithQuota(QuotaOff, WindowCalendarMonth))
		capTo(m, "1000")

		res, err := m.Create(ctx, "o1", designInput("10"))
		require.NoError(t, err)
		assert.Nil(t, res.Quota)
	})
}

func TestManager_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMockInvoiceRepo()
	m := newTestManager(repo)

	res, err := m.Create(ctx, "o1", designInput("0"))
	require.NoError(t, err)
	id := res.Invoice.ID

	inv, err := m.UpdateStatus(ctx, "o1", id, models.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, inv.Status)

	inv, err = m.UpdateStatus(ctx, "o1", id, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, inv.Status)

	before := repo.invoices[id]
	_, err = m.UpdateStatus(ctx, "o1", id, models.StatusPending)
	require.Error(t, err)
	var te *InvalidTransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, models.StatusCancelled, te.From)
	assert.Equal(t, models.StatusPending, te.To)
	assert.Equal(t, before, repo.invoices[id], "stored invoice is unchanged")

	_, err = m.UpdateStatus(ctx, "o1", id, "archived")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = m.UpdateStatus(ctx, "o2", id, models.StatusPaid)
	assert.True(t, errors.Is(err, ErrNotFound), "other owners cannot see the invoice")
}

func TestManager_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMockInvoiceRepo()
	m := newTestManager(repo)

	res, err := m.Create(ctx, "o1", designInput("10"))
	require.NoError(t, err)
	orig := res.Invoice

	name := "Acme Corp"
	notes := "thanks"
	due := "2024-05-15"
	same := models.StatusPending
	inv, err := m.Update(ctx, "o1", orig.ID, models.InvoicePatch{ClientName: &name, Notes: &notes, DueDate: &due, Status: &same})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", inv.ClientName)
	assert.Equal(t, "thanks", *inv.Notes)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-05-15", inv.DueDate.Format(models.DateLayout))
	assert.Equal(t, orig.Number, inv.Number)
	assert.True(t, orig.Total.Equal(inv.Total))

	overdue := models.StatusOverdue
	inv, err = m.Update(ctx, "o1", orig.ID, models.InvoicePatch{Status: &overdue})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOverdue, inv.Status)

	draft := models.StatusDraft
	_, err = m.Update(ctx, "o1", orig.ID, models.InvoicePatch{Status: &draft})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	empty := ""
	_, err = m.Update(ctx, "o1", orig.ID, models.InvoicePatch{ClientName: &empty})
	assert.True(t, errors.Is(err, ErrValidation))

	inv, err = m.Update(ctx, "o1", orig.ID, models.InvoicePatch{DueDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, inv.DueDate, "an empty due date clears it")
}

func TestManager_DeleteFreesTopNumber(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMockInvoiceRepo())

	first, err := m.Create(ctx, "o1", designInput("0"))
	require.NoError(t, err)
	second, err := m.Create(ctx, "o1", designInput("0"))
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "o1", second.Invoice.ID))
	third, err := m.Create(ctx, "o1", designInput("0"))
	require.NoError(t, err)
	assert.Equal(t, second.Invoice.Number, third.Invoice.Number)
	assert.NotEqual(t, first.Invoice.Number, third.Invoice.Number)

	assert.True(t, errors.Is(m.Delete(ctx, "o1", "missing"), ErrNotFound))
}

func TestManager_Duplicate(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMockInvoiceRepo())

	res, err := m.Create(ctx, "o1", designInput("10"))
	require.NoError(t, err)

	in, err := m.Duplicate(ctx, "o1", res.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", in.ClientName)
	assert.True(t, in.DiscountPercent.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, in.Status)

	dup, err := m.Create(ctx, "o1", *in)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0002", dup.Invoice.Number)
	assert.True(t, dup.Invoice.Total.Equal(res.Invoice.Total))
}

func TestManager_Quota(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMockInvoiceRepo())

	_, err := m.Create(ctx, "o1", designInput("10"))
	require.NoError(t, err)

	q, err := m.Quota(ctx, "o1")
	require.NoError(t, err)
	assertMoney(t, "1080", q.Current, "current")
	assertMoney(t, "200000", q.Cap, "cap")
	assert.False(t, q.Exceeded)
}
