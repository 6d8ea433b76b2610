package invoicing

import (
	"fmt"
	"strings"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the rounded monetary result for one invoice.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Total     decimal.Decimal `json:"total"`
}

// RoundMoney rounds half-up to two decimals. Amounts here are never negative,
// where half-away-from-zero and half-up agree.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampDiscount limits a discount percentage to [0,100].
func ClampDiscount(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// ValidateItems checks the line items a total can be computed from.
func ValidateItems(items []models.LineItem) error {
	if len(items) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line item is required"}
	}
	for i, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].description", i), Reason: "is required"}
		}
		if !it.Quantity.IsPositive() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Value: it.Quantity.String(), Reason: "must be greater than zero"}
		}
		if it.UnitPrice.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Value: it.UnitPrice.String(), Reason: "must not be negative"}
		}
	}
	return nil
}

// ComputeTotals sums the items, applies the clamped discount and VAT.
// Line totals are kept exact; each output is rounded once.
func ComputeTotals(items []models.LineItem, discountPercent decimal.Decimal, vatEnabled bool, vatRate decimal.Decimal) (Totals, error) {
	if err := ValidateItems(items); err != nil {
		return Totals{}, err
	}

	raw := decimal.Zero
	for _, it := range items {
		raw = raw.Add(it.LineTotal())
	}

	discount := ClampDiscount(discountPercent)
	subtotal := raw.Sub(raw.Mul(discount).Div(hundred))
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	subtotal = RoundMoney(subtotal)

	vat := decimal.Zero
	if vatEnabled {
		vat = RoundMoney(subtotal.Mul(vatRate))
	}

	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     subtotal.Add(vat),
	}, nil
}
