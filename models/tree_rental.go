package models

import (
	"time"
)

type RentalStatus string

const (
	RentalStatusActive RentalStatus = "active"
	RentalStatusEnded  RentalStatus = "ended"
)

type TreeRental struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	TreeID     uint         `json:"tree_id" gorm:"not null;index"`
	CustomerID uint         `json:"customer_id" gorm:"not null;index"`
	StartDate  time.Time    `json:"start_date" gorm:"type:date;not null"`
	EndDate    time.Time    `json:"end_date" gorm:"type:date;not null"`
	Status     RentalStatus `json:"status" gorm:"type:varchar(20);default:'active';check:status IN ('active','ended')"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	Tree     Tree     `json:"tree,omitempty" gorm:"foreignKey:TreeID"`
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (TreeRental) TableName() string {
	return "tree_rentals"
}
