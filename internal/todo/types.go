package todo

import (
	"errors"
	"time"
)

// TimeLayout is the timestamp format stored in created_at and added_at.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidIndex is returned when a display position is out of range.
	ErrInvalidIndex = errors.New("invalid task number")
)

// Task represents a single to-do item.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	AddedAt     string `json:"added_at" yaml:"added_at"`
}

// NewTask builds an incomplete task stamped with now.
func NewTask(id int, description string, now time.Time) Task {
	stamp := now.Format(TimeLayout)
	return Task{
		ID:          id,
		Description: description,
		Completed:   false,
		CreatedAt:   stamp,
		AddedAt:     stamp,
	}
}

// Stats is a read-only summary of the task list.
type Stats struct {
	Total     int  `json:"total" yaml:"total"`
	Completed int  `json:"completed" yaml:"completed"`
	Pending   int  `json:"pending" yaml:"pending"`
	Tasks     List `json:"tasks" yaml:"tasks"`
}
