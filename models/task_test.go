package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestTaskValidateResource(t *testing.T) {
	roomTask := Task{RoomID: uintPtr(1)}
	assert.NoError(t, roomTask.ValidateResource())

	treeTask := Task{TreeID: uintPtr(2)}
	assert.NoError(t, treeTask.ValidateResource())

	general := Task{}
	assert.NoError(t, general.ValidateResource())

	both := Task{RoomID: uintPtr(1), TreeID: uintPtr(2)}
	assert.ErrorIs(t, both.ValidateResource(), ErrTaskBothResources)
}

func TestTaskCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{"todo to doing", TaskStatusTodo, TaskStatusDoing, true},
		{"todo straight to done", TaskStatusTodo, TaskStatusDone, false},
		{"doing to done", TaskStatusDoing, TaskStatusDone, true},
		{"doing back to todo", TaskStatusDoing, TaskStatusTodo, true},
		{"done reopened to doing", TaskStatusDone, TaskStatusDoing, true},
		{"done back to todo", TaskStatusDone, TaskStatusTodo, false},
		{"same status is a no-op", TaskStatusDoing, TaskStatusDoing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Status: tt.from}
			assert.Equal(t, tt.allowed, task.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingBlocksRoom(t *testing.T) {
	confirmed := Booking{Status: BookingStatusConfirmed}
	pending := Booking{Status: BookingStatusPending}
	cancelled := Booking{Status: BookingStatusCancelled}

	assert.True(t, confirmed.BlocksRoom())
	assert.True(t, pending.BlocksRoom())
	assert.False(t, cancelled.BlocksRoom())
}
