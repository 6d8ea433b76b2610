package invoicing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/satheeshds/invoicer/models"
)

// NumberSeparator joins prefix, year and sequence: INV-2024-0001.
const NumberSeparator = "-"

// NumberingPolicy is the slice of Settings that drives numbering.
type NumberingPolicy struct {
	Prefix      string
	ZeroPadding int
	ResetYearly bool
}

// PolicyFrom extracts the numbering policy from settings.
func PolicyFrom(s models.Settings) NumberingPolicy {
	return NumberingPolicy{
		Prefix:      s.NumberingPrefix,
		ZeroPadding: s.ZeroPadding,
		ResetYearly: s.ResetNumberYearly,
	}
}

// maxSequence bounds a parsed sequence so the next one cannot overflow.
const maxSequence = math.MaxInt32

// ParseNumber splits an invoice number into its year and sequence segments.
// ok is false when the trailing segment is not an integer in
// [1, maxSequence). year is 0 when the segment before it is missing or not
// numeric.
func ParseNumber(number string) (year, seq int, ok bool) {
	parts := strings.Split(number, NumberSeparator)
	seq, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || seq <= 0 || seq >= maxSequence {
		return 0, 0, false
	}
	if len(parts) >= 2 {
		if y, err := strconv.Atoi(parts[len(parts)-2]); err == nil {
			year = y
		}
	}
	return year, seq, true
}

// FormatNumber renders {prefix}-{year}-{seq zero padded}.
func FormatNumber(policy NumberingPolicy, year, seq int) string {
	pad := policy.ZeroPadding
	if pad < 1 {
		pad = 1
	}
	return fmt.Sprintf("%s%s%d%s%0*d", policy.Prefix, NumberSeparator, year, NumberSeparator, pad, seq)
}

// NextNumber derives the next invoice number for ownerID from the invoices it
// already has. Malformed numbers are skipped. The highest live sequence wins,
// so a deleted top number is handed out again while gaps below it are not
// refilled.
func NextNumber(ownerID string, policy NumberingPolicy, existing []models.Invoice, now time.Time) string {
	year := now.Year()
	maxSeen := 0
	for _, inv := range existing {
		if inv.OwnerID != ownerID {
			continue
		}
		y, seq, ok := ParseNumber(inv.Number)
		if !ok {
			continue
		}
		if policy.ResetYearly && y != year {
			continue
		}
		if seq > maxSeen {
			maxSeen = seq
		}
	}
	return FormatNumber(policy, year, maxSeen+1)
}
