package invoicing

import (
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// DuplicateInput turns an existing invoice into a fresh creation input.
// Number, date, due date and status are never carried over; the copy is
// created with the default status.
func DuplicateInput(src models.Invoice) models.InvoiceInput {
	discount := LegacyDiscountPercent(src)
	in := models.InvoiceInput{
		ClientName:      src.ClientName,
		ClientAddress:   src.ClientAddress,
		ClientTaxID:     src.ClientTaxID,
		Items:           append([]models.LineItem(nil), src.Items...),
		DiscountPercent: &discount,
	}
	if src.Notes != nil {
		n := *src.Notes
		in.Notes = &n
	}
	return in
}

// LegacyDiscountPercent returns the stored discount, or for records saved
// before the discount was a field, recovers it from
// (itemsTotal - subtotal) / itemsTotal, rounded to two decimals.
func LegacyDiscountPercent(src models.Invoice) decimal.Decimal {
	if src.DiscountPercent != nil {
		return *src.DiscountPercent
	}
	itemsTotal := src.ItemsTotal()
	if !itemsTotal.IsPositive() || !src.Subtotal.LessThan(itemsTotal) {
		return decimal.Zero
	}
	ratio := itemsTotal.Sub(src.Subtotal).Div(itemsTotal).Mul(hundred)
	return ClampDiscount(ratio.Round(2))
}
