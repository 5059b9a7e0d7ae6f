package models

import (
	"time"
)

type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Capacity    int       `json:"capacity" gorm:"default:2"`
	NightlyRate float64   `json:"nightly_rate" gorm:"type:decimal(10,2);not null"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Room model
func (Room) TableName() string {
	return "rooms"
}
