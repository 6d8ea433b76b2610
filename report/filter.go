package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// Period restricts a listing to invoices dated in the current month or year.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// SortKey orders a listing.
type SortKey string

const (
	SortDate   SortKey = "date"
	SortAmount SortKey = "amount"
	SortNumber SortKey = "number"
)

// Filter selects and orders invoices for a listing. Empty fields mean all
// periods, every status and date-descending order.
type Filter struct {
	Period Period
	Status models.Status
	Search string
	Sort   SortKey
	Asc    bool
}

// ParseFilter validates listing parameters as they arrive on a query string.
// "all" is accepted for status.
func ParseFilter(period, status, search, sortKey, dir string) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	switch p := Period(period); p {
	case "", PeriodAll, PeriodMonth, PeriodYear:
		f.Period = p
	default:
		return f, fmt.Errorf("unknown period %q", period)
	}

	if status != "" && status != "all" {
		s := models.Status(status)
		if !s.Valid() {
			return f, fmt.Errorf("unknown status %q", status)
		}
		f.Status = s
	}

	switch k := SortKey(sortKey); k {
	case "", SortDate, SortAmount, SortNumber:
		f.Sort = k
	default:
		return f, fmt.Errorf("unknown sort key %q", sortKey)
	}

	switch strings.ToLower(dir) {
	case "", "desc":
	case "asc":
		f.Asc = true
	default:
		return f, fmt.Errorf("unknown sort direction %q", dir)
	}
	return f, nil
}

// Apply returns the invoices matching f in the requested order. The input
// slice is not modified.
func Apply(invoices []models.Invoice, f Filter, now time.Time) []models.Invoice {
	q := strings.ToLower(f.Search)
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !inPeriod(inv.Date, f.Period, now) {
			continue
		}
		if f.Status != "" && inv.Status.OrPending() != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(inv.ClientName), q) &&
			!strings.Contains(strings.ToLower(inv.Number), q) {
			continue
		}
		out = append(out, inv)
	}

	less := func(a, b models.Invoice) bool { return a.Date.Before(b.Date) }
	switch f.Sort {
	case SortAmount:
		less = func(a, b models.Invoice) bool { return a.Total.LessThan(b.Total) }
	case SortNumber:
		less = func(a, b models.Invoice) bool { return a.Number < b.Number }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func inPeriod(d time.Time, p Period, now time.Time) bool {
	switch p {
	case PeriodMonth:
		d = d.In(now.Location())
		return !d.IsZero() && d.Year() == now.Year() && d.Month() == now.Month()
	case PeriodYear:
		return !d.IsZero() && d.In(now.Location()).Year() == now.Year()
	}
	return true
}

// Stats summarises a listing.
type Stats struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Paid    int             `json:"paid"`
	Pending int             `json:"pending"`
	Overdue int             `json:"overdue"`
}

// ComputeStats counts and sums a listing.
func ComputeStats(invoices []models.Invoice) Stats {
	st := Stats{Count: len(invoices), Total: decimal.Zero}
	for _, inv := range invoices {
		st.Total = st.Total.Add(inv.Total)
		switch inv.Status.OrPending() {
		case models.StatusPaid:
			st.Paid++
		case models.StatusPending:
			st.Pending++
		case models.StatusOverdue:
			st.Overdue++
		}
	}
	return st
}
