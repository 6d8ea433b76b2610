package invoicing

import (
	"testing"

	"github.com/satheeshds/invoicer/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]models.Status]bool{
		{models.StatusDraft, models.StatusPending}:     true,
		{models.StatusPending, models.StatusPaid}:      true,
		{models.StatusPending, models.StatusOverdue}:   true,
		{models.StatusPending, models.StatusCancelled}: true,
		{models.StatusPaid, models.StatusCancelled}:    true,
		{models.StatusOverdue, models.StatusPaid}:      true,
		{models.StatusOverdue, models.StatusCancelled}: true,
	}

	for _, from := range models.Statuses {
		for _, to := range models.Statuses {
			want := allowed[[2]models.Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_EmptyReadsAsPending(t *testing.T) {
	assert.True(t, CanTransition("", models.StatusPaid))
	assert.False(t, CanTransition("", models.StatusDraft))
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []models.Status{}, NextStatuses(models.StatusCancelled))
	assert.ElementsMatch(t, []models.Status{models.StatusPaid, models.StatusCancelled}, NextStatuses(models.StatusOverdue))
}
