package models

import (
	"time"
)

type TreeStatus string

const (
	TreeStatusAvailable   TreeStatus = "available"
	TreeStatusRented      TreeStatus = "rented"
	TreeStatusMaintenance TreeStatus = "maintenance"
)

type Tree struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"size:255;not null"`
	Type            string     `json:"type" gorm:"size:100;not null"`
	Status          TreeStatus `json:"status" gorm:"type:varchar(20);default:'available';check:status IN ('available','rented','maintenance')"`
	CurrentRenterID *uint      `json:"current_renter_id"`
	ImageURL        string     `json:"image_url" gorm:"size:500"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	CurrentRenter *Customer `json:"current_renter,omitempty" gorm:"foreignKey:CurrentRenterID"`
}

func (Tree) TableName() string {
	return "trees"
}
