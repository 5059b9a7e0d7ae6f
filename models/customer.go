package models

import (
	"time"
)

// Customer is a guest or tree renter. Email and phone are deliberately not
// unique columns: walk-in data arrives messy, so duplicate resolution is
// handled by the reconciliation flow instead of a constraint.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;index"`
	Phone     string    `json:"phone" gorm:"size:32;index"`
	Notes     string    `json:"notes" gorm:"size:1000"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
