package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farmstay-server/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"disjoint before", "2024-06-01", "2024-06-05", "2024-06-10", "2024-06-12", false},
		{"disjoint after", "2024-06-10", "2024-06-12", "2024-06-01", "2024-06-05", false},
		{"partial overlap", "2024-06-10", "2024-06-12", "2024-06-11", "2024-06-13", true},
		{"contained", "2024-06-01", "2024-06-30", "2024-06-10", "2024-06-12", true},
		{"identical", "2024-06-10", "2024-06-12", "2024-06-10", "2024-06-12", true},
		{"shared changeover date counts", "2024-06-10", "2024-06-12", "2024-06-12", "2024-06-15", true},
		{"single day inside", "2024-06-10", "2024-06-12", "2024-06-11", "2024-06-11", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindBookingConflict(t *testing.T) {
	existing := []models.Booking{
		{
			ID:           1,
			RoomID:       1,
			CheckInDate:  date("2024-06-10"),
			CheckOutDate: date("2024-06-12"),
			Status:       models.BookingStatusConfirmed,
		},
	}

	t.Run("overlapping stay is rejected", func(t *testing.T) {
		conflict := FindBookingConflict(existing, date("2024-06-11"), date("2024-06-13"), 0)
		assert.NotNil(t, conflict)
		assert.Equal(t, uint(1), conflict.ID)
	})

	t.Run("disjoint stay passes", func(t *testing.T) {
		conflict := FindBookingConflict(existing, date("2024-06-20"), date("2024-06-22"), 0)
		assert.Nil(t, conflict)
	})

	t.Run("cancelled bookings free the room", func(t *testing.T) {
		cancelled := []models.Booking{
			{
				ID:           2,
				CheckInDate:  date("2024-06-10"),
				CheckOutDate: date("2024-06-12"),
				Status:       models.BookingStatusCancelled,
			},
		}
		conflict := FindBookingConflict(cancelled, date("2024-06-11"), date("2024-06-13"), 0)
		assert.Nil(t, conflict)
	})

	t.Run("pending bookings still block", func(t *testing.T) {
		pending := []models.Booking{
			{
				ID:           3,
				CheckInDate:  date("2024-06-10"),
				CheckOutDate: date("2024-06-12"),
				Status:       models.BookingStatusPending,
			},
		}
		conflict := FindBookingConflict(pending, date("2024-06-11"), date("2024-06-13"), 0)
		assert.NotNil(t, conflict)
	})

	t.Run("edited booking is excluded from its own conflict set", func(t *testing.T) {
		conflict := FindBookingConflict(existing, date("2024-06-10"), date("2024-06-14"), 1)
		assert.Nil(t, conflict)
	})

	t.Run("resubmitting an identical booking conflicts with the first", func(t *testing.T) {
		conflict := FindBookingConflict(existing, date("2024-06-10"), date("2024-06-12"), 0)
		assert.NotNil(t, conflict)
	})
}

func TestFindRentalConflict(t *testing.T) {
	existing := []models.TreeRental{
		{
			ID:        1,
			TreeID:    7,
			StartDate: date("2024-03-01"),
			EndDate:   date("2024-09-01"),
			Status:    models.RentalStatusActive,
		},
		{
			ID:        2,
			TreeID:    7,
			StartDate: date("2023-01-01"),
			EndDate:   date("2023-12-31"),
			Status:    models.RentalStatusEnded,
		},
	}

	t.Run("active rental blocks overlapping period", func(t *testing.T) {
		conflict := FindRentalConflict(existing, date("2024-08-01"), date("2025-02-01"), 0)
		assert.NotNil(t, conflict)
		assert.Equal(t, uint(1), conflict.ID)
	})

	t.Run("ended rental does not block", func(t *testing.T) {
		conflict := FindRentalConflict(existing, date("2023-06-01"), date("2023-07-01"), 0)
		assert.Nil(t, conflict)
	})

	t.Run("period after the active rental passes", func(t *testing.T) {
		conflict := FindRentalConflict(existing, date("2024-09-02"), date("2025-09-01"), 0)
		assert.Nil(t, conflict)
	})
}
