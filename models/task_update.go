package models

import (
	"time"
)

// TaskUpdate is a progress note appended to a task
type TaskUpdate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null"`
	Note      string    `json:"note" gorm:"size:2000;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Author StaffUser `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (TaskUpdate) TableName() string {
	return "task_updates"
}
