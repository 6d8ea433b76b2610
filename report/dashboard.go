// Package report derives read-side figures from an owner's invoices:
// dashboard aggregates, filtered listings and CSV export. Every function is
// total and never fails on dirty records; invoices without a date are left
// out of time-bucketed views.
package report

import (
	"sort"
	"time"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// DefaultSeriesMonths is the revenue chart length when none is requested.
const DefaultSeriesMonths = 6

// RecentLimit is how many invoices the dashboard lists as recent activity.
const RecentLimit = 5

var hundred = decimal.NewFromInt(100)

// MonthRevenue is the paid revenue of one calendar month.
type MonthRevenue struct {
	Key   string          `json:"key"`   // YYYY-MM
	Label string          `json:"label"` // Jan, Feb, ...
	Value decimal.Decimal `json:"value"`
}

// Dashboard is the summary shown on the owner's landing page.
type Dashboard struct {
	TotalRevenue    decimal.Decimal       `json:"total_revenue"`
	LifetimeRevenue decimal.Decimal       `json:"lifetime_revenue"`
	Outstanding     decimal.Decimal       `json:"outstanding"`
	ActiveInvoices  int                   `json:"active_invoices"`
	OverdueCount    int                   `json:"overdue_count"`
	TotalClients    int                   `json:"total_clients"`
	StatusCounts    map[models.Status]int `json:"status_counts"`
	RevenueTrend    decimal.Decimal       `json:"revenue_trend"`
	RevenueSeries   []MonthRevenue        `json:"revenue_series"`
	Recent          []models.Invoice      `json:"recent"`
}

// BuildDashboard computes every dashboard figure as of now. clients is the
// size of the owner's client directory. months <= 0 falls back to
// DefaultSeriesMonths.
func BuildDashboard(invoices []models.Invoice, clients int, now time.Time, months int) Dashboard {
	if months <= 0 {
		months = DefaultSeriesMonths
	}
	counts := StatusCounts(invoices)
	return Dashboard{
		TotalRevenue:    MonthRevenueAt(invoices, now),
		LifetimeRevenue: TotalRevenue(invoices),
		Outstanding:     Outstanding(invoices),
		ActiveInvoices:  counts[models.StatusPending] + counts[models.StatusOverdue],
		OverdueCount:    counts[models.StatusOverdue],
		TotalClients:    clients,
		StatusCounts:    counts,
		RevenueTrend:    MonthOverMonthTrend(invoices, now),
		RevenueSeries:   RevenueSeries(invoices, now, months),
		Recent:          Recent(invoices, RecentLimit),
	}
}

// TotalRevenue sums the total of every paid invoice.
func TotalRevenue(invoices []models.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.Status.OrPending() == models.StatusPaid {
			sum = sum.Add(inv.Total)
		}
	}
	return sum
}

// Outstanding sums pending and overdue invoices.
func Outstanding(invoices []models.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		switch inv.Status.OrPending() {
		case models.StatusPending, models.StatusOverdue:
			sum = sum.Add(inv.Total)
		}
	}
	return sum
}

// MonthRevenueAt is the paid revenue dated in the calendar month containing t.
func MonthRevenueAt(invoices []models.Invoice, t time.Time) decimal.Decimal {
	return paidByMonth(invoices, t.Location())[monthKey(t)]
}

// MonthOverMonthTrend is the percent change in paid revenue from the
// previous calendar month to the current one, rounded to 2 decimals. It is
// +100 when only the current month has revenue and 0 when neither has.
func MonthOverMonthTrend(invoices []models.Invoice, now time.Time) decimal.Decimal {
	byMonth := paidByMonth(invoices, now.Location())
	cur := byMonth[monthKey(now)]
	prev := byMonth[monthKey(firstOfMonth(now).AddDate(0, -1, 0))]

	switch {
	case prev.IsPositive():
		return cur.Sub(prev).Div(prev).Mul(hundred).Round(2)
	case cur.IsPositive():
		return hundred
	default:
		return decimal.Zero
	}
}

// RevenueSeries buckets paid revenue by calendar month for the trailing n
// months ending with the month of now, oldest first and zero filled.
func RevenueSeries(invoices []models.Invoice, now time.Time, n int) []MonthRevenue {
	if n <= 0 {
		return []MonthRevenue{}
	}
	byMonth := paidByMonth(invoices, now.Location())
	start := firstOfMonth(now).AddDate(0, -(n - 1), 0)

	series := make([]MonthRevenue, 0, n)
	for i := 0; i < n; i++ {
		m := start.AddDate(0, i, 0)
		key := monthKey(m)
		v, ok := byMonth[key]
		if !ok {
			v = decimal.Zero
		}
		series = append(series, MonthRevenue{Key: key, Label: m.Format("Jan"), Value: v})
	}
	return series
}

// StatusCounts counts invoices per status, with every known status present.
func StatusCounts(invoices []models.Invoice) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, inv := range invoices {
		counts[inv.Status.OrPending()]++
	}
	return counts
}

// Recent returns up to limit invoices, newest date first.
func Recent(invoices []models.Invoice, limit int) []models.Invoice {
	out := append([]models.Invoice(nil), invoices...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func paidByMonth(invoices []models.Invoice, loc *time.Location) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if inv.Status.OrPending() != models.StatusPaid || inv.Date.IsZero() {
			continue
		}
		key := monthKey(inv.Date.In(loc))
		out[key] = out[key].Add(inv.Total)
	}
	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
