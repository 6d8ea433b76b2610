package invoicing

import "github.com/satheeshds/invoicer/models"

// transitions is the lifecycle table. Nothing leaves cancelled. paid ->
// cancelled exists to correct an invoice marked paid by mistake.
var transitions = map[models.Status][]models.Status{
	models.StatusDraft:   {models.StatusPending},
	models.StatusPending: {models.StatusPaid, models.StatusOverdue, models.StatusCancelled},
	models.StatusPaid:    {models.StatusCancelled},
	models.StatusOverdue: {models.StatusPaid, models.StatusCancelled},
}

// CanTransition reports whether from -> to is allowed. A stored empty status
// reads as pending.
func CanTransition(from, to models.Status) bool {
	for _, s := range transitions[from.OrPending()] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s.
func NextStatuses(s models.Status) []models.Status {
	next := transitions[s.OrPending()]
	return append(make([]models.Status, 0, len(next)), next...)
}
