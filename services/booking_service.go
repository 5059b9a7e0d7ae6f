package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"farmstay-server/models"
)

// ErrBookingConflict is returned when a proposed stay overlaps an existing
// non-cancelled booking on the same room
var ErrBookingConflict = errors.New("room already booked for the selected dates")

// BookingService owns the booking no-overlap invariant
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// BookingInput carries the validated fields of a create or edit submission
type BookingInput struct {
	RoomID       uint
	CustomerID   uint
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       models.BookingStatus
	Guests       int
	Notes        *string
}

// CreateBooking inserts a booking after the conflict guard passes. Guard and
// insert run in one transaction with candidate rows locked, so two
// submissions racing for the same room cannot both land; the exclusion
// constraint on the table backstops anything the lock misses.
func (s *BookingService) CreateBooking(in BookingInput) (*models.Booking, error) {
	booking := &models.Booking{
		ReferenceCode: uuid.NewString(),
		RoomID:        in.RoomID,
		CustomerID:    in.CustomerID,
		CheckInDate:   in.CheckInDate,
		CheckOutDate:  in.CheckOutDate,
		Status:        in.Status,
		Guests:        in.Guests,
		Notes:         in.Notes,
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.guard(tx, in.RoomID, in.CheckInDate, in.CheckOutDate, 0); err != nil {
			return err
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBooking applies an edit, re-running the guard with the edited
// booking excluded from the conflict set
func (s *BookingService) UpdateBooking(id uint, in BookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}

		// Cancelling never needs the guard; the booking stops blocking
		if in.Status != models.BookingStatusCancelled {
			if err := s.guard(tx, in.RoomID, in.CheckInDate, in.CheckOutDate, id); err != nil {
				return err
			}
		}

		booking.RoomID = in.RoomID
		booking.CustomerID = in.CustomerID
		booking.CheckInDate = in.CheckInDate
		booking.CheckOutDate = in.CheckOutDate
		booking.Guests = in.Guests
		booking.Notes = in.Notes
		if in.Status != "" {
			booking.Status = in.Status
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// guard locks the room's non-cancelled bookings and checks them against the
// proposed stay. SQL narrows to the room and live statuses; the overlap
// decision itself is the shared predicate.
func (s *BookingService) guard(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) error {
	var candidates []models.Booking
	q := tx.Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingStatusCancelled)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return err
	}

	if conflict := FindBookingConflict(candidates, checkIn, checkOut, excludeID); conflict != nil {
		return ErrBookingConflict
	}
	return nil
}
