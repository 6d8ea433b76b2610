package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(id, owner, number string, created time.Time) *models.Invoice {
	discount := decimal.NewFromInt(10)
	return &models.Invoice{
		ID:         id,
		OwnerID:    owner,
		Number:     number,
		Date:       created,
		ClientName: "Acme",
		Status:     models.StatusPending,
		Items: []models.LineItem{{
			Description: "Design",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.RequireFromString("500.50"),
		}},
		DiscountPercent: &discount,
		Subtotal:        decimal.RequireFromString("900.90"),
		VATAmount:       decimal.RequireFromString("180.18"),
		Total:           decimal.RequireFromString("1081.08"),
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Run("invoices", func(t *testing.T) { testInvoices(t, s) })
	t.Run("settings", func(t *testing.T) { testSettings(t, s) })
	t.Run("clients", func(t *testing.T) { testClients(t, s) })
	t.Run("issued totals", func(t *testing.T) { testIssuedTotals(t, s) })
}

func testInvoices(t *testing.T, s Store) {
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	saved, err := s.Save(ctx, testInvoice("a", "o1", "INV-2024-0001", t0))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", saved.Number)
	assert.True(t, saved.Total.Equal(decimal.RequireFromString("1081.08")))
	require.Len(t, saved.Items, 1)
	assert.True(t, saved.Items[0].UnitPrice.Equal(decimal.RequireFromString("500.50")))
	require.NotNil(t, saved.DiscountPercent)
	assert.True(t, saved.DiscountPercent.Equal(decimal.NewFromInt(10)))
	assert.Nil(t, saved.Notes)
	assert.Nil(t, saved.DueDate)

	_, err = s.Save(ctx, testInvoice("b", "o1", "INV-2024-0002", t0.Add(time.Hour)))
	require.NoError(t, err)
	_, err = s.Save(ctx, testInvoice("c", "o2", "INV-2024-0001", t0))
	require.NoError(t, err, "numbers are unique per owner only")

	list, err := s.FindByOwner(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "newest first")

	_, err = s.Save(ctx, testInvoice("d", "o1", "INV-2024-0002", t0))
	assert.True(t, errors.Is(err, invoicing.ErrDuplicateNumber), "got %v", err)

	_, err = s.FindByID(ctx, "o2", "a")
	assert.True(t, errors.Is(err, invoicing.ErrNotFound), "owner scoped")

	// Updates touch the mutable fields only.
	upd := testInvoice("a", "o1", "INV-2024-0001", t0)
	upd.Status = models.StatusPaid
	notes := "paid by wire"
	upd.Notes = &notes
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	upd.DueDate = &due
	upd.UpdatedAt = t0.Add(2 * time.Hour)
	saved, err = s.Save(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, saved.Status)
	require.NotNil(t, saved.Notes)
	assert.Equal(t, "paid by wire", *saved.Notes)
	require.NotNil(t, saved.DueDate)
	assert.Equal(t, "2024-02-01", saved.DueDate.UTC().Format(models.DateLayout))

	assert.True(t, errors.Is(s.Delete(ctx, "o2", "a"), invoicing.ErrNotFound))
	require.NoError(t, s.Delete(ctx, "o1", "a"))
	_, err = s.FindByID(ctx, "o1", "a")
	assert.True(t, errors.Is(err, invoicing.ErrNotFound))
}

func testSettings(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.FindSettings(ctx, "o1")
	assert.True(t, errors.Is(err, invoicing.ErrNotFound))

	st := models.DefaultSettings("o1")
	st.UpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertSettings(ctx, &st))
	assert.True(t, errors.Is(s.InsertSettings(ctx, &st), invoicing.ErrDuplicate))

	st.Currency = "EUR"
	st.VATRate = decimal.RequireFromString("0.1")
	st.ZeroPadding = 6
	require.NoError(t, s.SaveSettings(ctx, &st))

	got, err := s.FindSettings(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, 6, got.ZeroPadding)
	assert.True(t, got.VATRate.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, got.MonthlyCap.Equal(decimal.NewFromInt(200000)))
	assert.Equal(t, models.BusinessServices, got.BusinessType)
}

func testClients(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []models.Client{
		{ID: "1", OwnerID: "o1", Name: "Globex", TaxID: "ICE1"},
		{ID: "2", OwnerID: "o1", Name: "Acme", Address: "Casablanca"},
		{ID: "3", OwnerID: "o2", Name: "Initech"},
	} {
		c.CreatedAt, c.UpdatedAt = now, now
		require.NoError(t, s.SaveClient(ctx, &c))
	}

	all, err := s.ListClients(ctx, "o1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)

	found, err := s.ListClients(ctx, "o1", "casa")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)

	_, err = s.FindClient(ctx, "o1", "3")
	assert.True(t, errors.Is(err, invoicing.ErrNotFound))

	renamed := models.Client{ID: "2", OwnerID: "o1", Name: "Acme SARL", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.SaveClient(ctx, &renamed))
	got, err := s.FindClient(ctx, "o1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Acme SARL", got.Name)

	require.NoError(t, s.DeleteClient(ctx, "o1", "1"))
	assert.True(t, errors.Is(s.DeleteClient(ctx, "o1", "1"), invoicing.ErrNotFound))
}

// testIssuedTotals creates through the engine and checks that the reloaded
// record still satisfies its own totals.
func testIssuedTotals(t *testing.T, s Store) {
	ctx := context.Background()
	m := invoicing.NewManager(s, invoicing.NewSettingsStore(s))

	discount := decimal.RequireFromString("12.345")
	res, err := m.Create(ctx, "o9", models.InvoiceInput{
		ClientName:      "Acme",
		Items:           []models.LineItem{{Description: "Audit", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)}},
		DiscountPercent: &discount,
	})
	require.NoError(t, err)

	got, err := s.FindByID(ctx, "o9", res.Invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DiscountPercent)
	assert.True(t, got.DiscountPercent.Equal(*res.Invoice.DiscountPercent), "stored %s, issued %s", got.DiscountPercent, res.Invoice.DiscountPercent)

	again, err := invoicing.ComputeTotals(got.Items, *got.DiscountPercent, true, decimal.RequireFromString("0.20"))
	require.NoError(t, err)
	assert.True(t, again.Subtotal.Equal(got.Subtotal), "subtotal %s, recomputed %s", got.Subtotal, again.Subtotal)
	assert.True(t, again.Total.Equal(got.Total), "total %s, recomputed %s", got.Total, again.Total)

	dup, err := m.Duplicate(ctx, "o9", got.ID)
	require.NoError(t, err)
	require.NotNil(t, dup.DiscountPercent)
	assert.True(t, dup.DiscountPercent.Equal(*got.DiscountPercent))
}
