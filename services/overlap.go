package services

import (
	"time"

	"farmstay-server/models"
)

// Overlaps reports whether two inclusive date ranges touch. The rule is the
// one the booking forms enforce: aStart <= bEnd AND aEnd >= bStart, so
// back-to-back stays sharing a changeover date count as a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// FindBookingConflict returns the first booking among candidates that blocks
// the proposed [checkIn, checkOut] stay. Cancelled bookings never block, and
// the booking being edited is excluded by id (excludeID 0 excludes nothing).
func FindBookingConflict(candidates []models.Booking, checkIn, checkOut time.Time, excludeID uint) *models.Booking {
	for i := range candidates {
		b := &candidates[i]
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !b.BlocksRoom() {
			continue
		}
		if Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			return b
		}
	}
	return nil
}

// FindRentalConflict returns the first active rental among candidates that
// overlaps the proposed [start, end] period.
func FindRentalConflict(candidates []models.TreeRental, start, end time.Time, excludeID uint) *models.TreeRental {
	for i := range candidates {
		r := &candidates[i]
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if r.Status != models.RentalStatusActive {
			continue
		}
		if Overlaps(r.StartDate, r.EndDate, start, end) {
			return r
		}
	}
	return nil
}
