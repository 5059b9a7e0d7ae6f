package models

import (
	"errors"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "To Do"
	TaskStatusDoing TaskStatus = "Doing"
	TaskStatusDone  TaskStatus = "Done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

var (
	ErrTaskBothResources = errors.New("task cannot reference both a room and a tree")
	ErrTaskBadTransition = errors.New("invalid task status transition")
)

// Task is a unit of farm work. It may target a room or a tree but never
// both at once.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description string       `json:"description" gorm:"size:2000"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);default:'To Do';check:status IN ('To Do','Doing','Done')"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);default:'medium';check:priority IN ('low','medium','high')"`
	AssigneeID  *uint        `json:"assignee_id"`
	RoomID      *uint        `json:"room_id"`
	TreeID      *uint        `json:"tree_id"`
	DueDate     *time.Time   `json:"due_date" gorm:"type:date"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	Assignee *StaffUser   `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Room     *Room        `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Tree     *Tree        `json:"tree,omitempty" gorm:"foreignKey:TreeID"`
	Updates  []TaskUpdate `json:"updates,omitempty" gorm:"foreignKey:TaskID"`
}

func (Task) TableName() string {
	return "tasks"
}

// ValidateResource enforces the room XOR tree rule
func (t *Task) ValidateResource() error {
	if t.RoomID != nil && t.TreeID != nil {
		return ErrTaskBothResources
	}
	return nil
}

// CanTransitionTo reports whether the status workflow allows moving to next.
// The board moves forward one column at a time; Done tasks can be reopened
// to Doing.
func (t *Task) CanTransitionTo(next TaskStatus) bool {
	if t.Status == next {
		return true
	}
	switch t.Status {
	case TaskStatusTodo:
		return next == TaskStatusDoing
	case TaskStatusDoing:
		return next == TaskStatusDone || next == TaskStatusTodo
	case TaskStatusDone:
		return next == TaskStatusDoing
	}
	return false
}
