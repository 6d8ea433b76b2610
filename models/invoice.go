package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// OrPending maps the empty status of older records to pending.
func (s Status) OrPending() Status {
	if s == "" {
		return StatusPending
	}
	return s
}

// LineItem is one billed position. Order is kept for display only.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity * unit price, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Invoice represents an issued invoice. Client fields are a snapshot taken at
// creation and are not linked to the client directory afterwards.
type Invoice struct {
	ID              string           `json:"id"`
	OwnerID         string           `json:"owner_id"`
	Number          string           `json:"number"`
	Date            time.Time        `json:"date"`
	DueDate         *time.Time       `json:"due_date"`
	ClientName      string           `json:"client_name"`
	ClientAddress   string           `json:"client_address"`
	ClientTaxID     string           `json:"client_tax_id"`
	Status          Status           `json:"status"`
	Items           []LineItem       `json:"items"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"` // nil on records stored before discounts existed
	Subtotal        decimal.Decimal  `json:"subtotal"`
	VATAmount       decimal.Decimal  `json:"vat_amount"`
	Total           decimal.Decimal  `json:"total"`
	Notes           *string          `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ItemsTotal is the undiscounted sum of all line totals.
func (inv *Invoice) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]LineItem(nil), inv.Items...)
	if inv.DueDate != nil {
		d := *inv.DueDate
		out.DueDate = &d
	}
	if inv.DiscountPercent != nil {
		d := *inv.DiscountPercent
		out.DiscountPercent = &d
	}
	if inv.Notes != nil {
		n := *inv.Notes
		out.Notes = &n
	}
	return out
}

// InvoiceInput is used for creating invoices and is what duplicating an
// invoice produces.
type InvoiceInput struct {
	ClientID        *string          `json:"client_id,omitempty"`
	ClientName      string           `json:"client_name"`
	ClientAddress   string           `json:"client_address"`
	ClientTaxID     string           `json:"client_tax_id"`
	Status          Status           `json:"status,omitempty"` // "", pending or draft
	DueDate         *string          `json:"due_date"`         // YYYY-MM-DD
	Items           []LineItem       `json:"items"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	Notes           *string          `json:"notes"`
}

// InvoicePatch carries the fields that may change after creation. Nil means
// "leave as is"; an empty DueDate clears it.
type InvoicePatch struct {
	ClientName    *string `json:"client_name"`
	ClientAddress *string `json:"client_address"`
	ClientTaxID   *string `json:"client_tax_id"`
	Notes         *string `json:"notes"`
	DueDate       *string `json:"due_date"`
	Status        *Status `json:"status"`
}

// ImmutableInvoiceFields are the JSON keys an update is never allowed to carry.
var ImmutableInvoiceFields = []string{"items", "discount_percent", "number", "date", "subtotal", "vat_amount", "total"}

// DateLayout is the calendar date format used by inputs and exports.
const DateLayout = "2006-01-02"
