package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recurrence determines whether and how a successor task is generated
// when a task is completed.
type Recurrence string

// Possible recurrence values
const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Common validation errors for Task
var (
	ErrTaskIDEmpty       = errors.New("task ID cannot be empty")
	ErrTaskUserIDEmpty   = errors.New("task user ID cannot be empty")
	ErrTaskTitleEmpty    = errors.New("task title cannot be empty")
	ErrInvalidRecurrence = errors.New("invalid recurrence value")
)

// Task represents a single to-do item belonging to one user.
// The owner is assigned at creation and never changes; every store
// operation on a task is scoped by (ID, UserID).
type Task struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Done       bool       `json:"done"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Recurrence Recurrence `json:"recurrence"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID, marks the task not done,
// and sets the creation/update timestamps. A nil dueDate means the
// task has no deadline. An empty recurrence defaults to RecurrenceNone.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, dueDate *time.Time, recurrence Recurrence) (*Task, error) {
	if recurrence == "" {
		recurrence = RecurrenceNone
	}

	task := &Task{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Done:       false,
		DueDate:    dueDate,
		Recurrence: recurrence,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if !IsValidRecurrence(t.Recurrence) {
		return ErrInvalidRecurrence
	}

	return nil
}

// IsValidRecurrence checks if the given value is a valid Recurrence.
func IsValidRecurrence(r Recurrence) bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}
