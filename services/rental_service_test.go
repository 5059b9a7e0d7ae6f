package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farmstay-server/models"
	"farmstay-server/utils"
)

// The expiry sweep selects rentals with end_date before the start of the
// current day. End dates are inclusive, so a rental on its final day must
// survive every sweep until the day rolls over.
func TestExpirySweepCutoff(t *testing.T) {
	// First hourly tick after midnight on the rental's final day
	now := date("2026-08-31").Add(1 * time.Hour)
	cutoff := utils.StartOfDay(now)

	endsToday := models.TreeRental{
		EndDate: date("2026-08-31"),
		Status:  models.RentalStatusActive,
	}
	endedYesterday := models.TreeRental{
		EndDate: date("2026-08-30"),
		Status:  models.RentalStatusActive,
	}

	assert.False(t, endsToday.EndDate.Before(cutoff), "rental ending today must not be swept")
	assert.True(t, endedYesterday.EndDate.Before(cutoff), "rental ended yesterday must be swept")
}
