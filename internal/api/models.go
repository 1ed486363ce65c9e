package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/tasknest/tasknest-api/internal/domain"
)

// NullableTime is a due-date value that distinguishes three states in a
// request body: absent (leave unchanged), JSON null (clear the
// deadline), and a timestamp (set it). Plain *time.Time cannot tell
// the first two apart after unmarshaling.
type NullableTime struct {
	Set   bool      // field was present in the body
	Valid bool      // field held a non-null value
	Time  time.Time // the value, when Valid
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Time); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// CreateTaskRequest represents the request body for creating a new task.
type CreateTaskRequest struct {
	Title      string     `json:"title"                validate:"required"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Recurrence string     `json:"recurrence,omitempty" validate:"omitempty,oneof=none daily weekly monthly"`
}

// ToggleTaskRequest represents the request body for toggling completion.
type ToggleTaskRequest struct {
	ID   string `json:"id"   validate:"required,uuid"`
	Done *bool  `json:"done" validate:"required"`
}

// PatchTaskRequest represents the request body for a partial field update.
// Omitted fields are left untouched; an explicit null dueDate clears the
// deadline.
type PatchTaskRequest struct {
	ID         string       `json:"id"         validate:"required,uuid"`
	Title      *string      `json:"title"`
	DueDate    NullableTime `json:"dueDate"`
	Recurrence *string      `json:"recurrence" validate:"omitempty,oneof=none daily weekly monthly"`
}

// DeleteTaskRequest represents the request body for deleting one task.
type DeleteTaskRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title"`
	Done       bool       `json:"done"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Recurrence string     `json:"recurrence"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:         task.ID.String(),
		UserID:     task.UserID.String(),
		Title:      task.Title,
		Done:       task.Done,
		DueDate:    task.DueDate,
		Recurrence: string(task.Recurrence),
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}

// tasksToResponse converts a slice of tasks, never returning nil so the
// list endpoint always serializes to a JSON array.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request body for refreshing a token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SuccessResponse is the body for operations that only report success.
type SuccessResponse struct {
	Success bool `json:"success"`
}
