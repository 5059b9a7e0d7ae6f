package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	ReferenceCode string        `json:"reference_code" gorm:"size:64;uniqueIndex"`
	RoomID        uint          `json:"room_id" gorm:"not null;index"`
	CustomerID    uint          `json:"customer_id" gorm:"not null;index"`
	CheckInDate   time.Time     `json:"check_in_date" gorm:"type:date;not null"`
	CheckOutDate  time.Time     `json:"check_out_date" gorm:"type:date;not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('confirmed','pending','cancelled')"`
	Guests        int           `json:"guests" gorm:"default:1"`
	Notes         *string       `json:"notes" gorm:"size:1000"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Room     Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BlocksRoom reports whether this booking counts against the room's
// availability. Cancelled bookings free the room.
func (b *Booking) BlocksRoom() bool {
	return b.Status != BookingStatusCancelled
}
