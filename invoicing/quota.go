package invoicing

import (
	"fmt"
	"time"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// QuotaMode decides what creation does with a cap overrun.
type QuotaMode string

const (
	QuotaOff   QuotaMode = "off"
	QuotaWarn  QuotaMode = "warn"
	QuotaBlock QuotaMode = "block"
)

// QuotaWindow selects which invoices count towards the cap.
type QuotaWindow string

const (
	WindowCalendarMonth QuotaWindow = "month"
	WindowTrailing30    QuotaWindow = "trailing30"
)

// ParseQuotaMode accepts off, warn and block.
func ParseQuotaMode(s string) (QuotaMode, error) {
	switch m := QuotaMode(s); m {
	case QuotaOff, QuotaWarn, QuotaBlock:
		return m, nil
	}
	return "", fmt.Errorf("unknown quota mode %q", s)
}

// ParseQuotaWindow accepts month and trailing30.
func ParseQuotaWindow(s string) (QuotaWindow, error) {
	switch w := QuotaWindow(s); w {
	case WindowCalendarMonth, WindowTrailing30:
		return w, nil
	}
	return "", fmt.Errorf("unknown quota window %q", s)
}

// QuotaStatus is the would-be position against the monthly cap.
type QuotaStatus struct {
	Window   QuotaWindow     `json:"window"`
	Cap      decimal.Decimal `json:"cap"`
	Current  decimal.Decimal `json:"current"`
	Amount   decimal.Decimal `json:"amount"`
	WouldBe  decimal.Decimal `json:"would_be"`
	Over     decimal.Decimal `json:"over"`
	Exceeded bool            `json:"exceeded"`
}

// Err returns a QuotaExceededError when the cap is exceeded, nil otherwise.
func (q QuotaStatus) Err() error {
	if !q.Exceeded {
		return nil
	}
	return &QuotaExceededError{
		Cap:     q.Cap,
		Current: q.Current,
		Amount:  q.Amount,
		WouldBe: q.WouldBe,
		Over:    q.Over,
		Window:  string(q.Window),
	}
}

// windowStart returns the inclusive lower bound of the window ending at now.
func windowStart(w QuotaWindow, now time.Time) time.Time {
	if w == WindowTrailing30 {
		return now.AddDate(0, 0, -30)
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// CheckQuota sums paid and pending invoices dated inside the window and adds
// amount. A zero limit disables the check.
func CheckQuota(invoices []models.Invoice, limit decimal.Decimal, amount decimal.Decimal, w QuotaWindow, now time.Time) QuotaStatus {
	from := windowStart(w, now)
	current := decimal.Zero
	for _, inv := range invoices {
		switch inv.Status.OrPending() {
		case models.StatusPaid, models.StatusPending:
		default:
			continue
		}
		if inv.Date.IsZero() || inv.Date.Before(from) || inv.Date.After(now) {
			continue
		}
		current = current.Add(inv.Total)
	}

	q := QuotaStatus{
		Window:  w,
		Cap:     limit,
		Current: current,
		Amount:  amount,
		WouldBe: current.Add(amount),
		Over:    decimal.Zero,
	}
	if limit.IsPositive() && q.WouldBe.GreaterThan(limit) {
		q.Exceeded = true
		q.Over = q.WouldBe.Sub(limit)
	}
	return q
}
