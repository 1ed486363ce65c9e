// Package recurrence computes successor occurrences for recurring tasks.
// All functions are pure; persistence of the produced task is the
// caller's responsibility.
package recurrence

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
)

// Common errors
var (
	ErrNilTask = errors.New("task cannot be nil")
)

// NextDueDate applies the recurrence offset to the given base date.
// Daily adds one calendar day, weekly seven, monthly one calendar month.
//
// Monthly arithmetic follows time.Time.AddDate normalization: a day
// past the end of the target month rolls over into the next one, so
// 2024-01-31 + 1 month = 2024-03-02.
func NextDueDate(rule domain.Recurrence, base time.Time) time.Time {
	switch rule {
	case domain.RecurrenceDaily:
		return base.AddDate(0, 0, 1)
	case domain.RecurrenceWeekly:
		return base.AddDate(0, 0, 7)
	case domain.RecurrenceMonthly:
		return base.AddDate(0, 1, 0)
	default:
		return base
	}
}

// NextOccurrence builds the successor task for a just-completed
// recurring task. It returns (nil, nil) when no successor is due:
// the task is not done, or its recurrence is none.
//
// The base for the date computation is the task's due date when
// present, otherwise now. The successor is a brand new task (new ID,
// new timestamps) with the same title, owner, and recurrence rule,
// not done, due at the computed date.
func NextOccurrence(task *domain.Task, now time.Time) (*domain.Task, error) {
	if task == nil {
		return nil, ErrNilTask
	}

	if !task.Done || task.Recurrence == domain.RecurrenceNone {
		return nil, nil
	}

	base := now
	if task.DueDate != nil {
		base = *task.DueDate
	}

	next := NextDueDate(task.Recurrence, base)

	successor := &domain.Task{
		ID:         uuid.New(),
		UserID:     task.UserID,
		Title:      task.Title,
		Done:       false,
		DueDate:    &next,
		Recurrence: task.Recurrence,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}

	if err := successor.Validate(); err != nil {
		return nil, err
	}

	return successor, nil
}
