package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundErrorHierarchy(t *testing.T) {
	if !IsNotFoundError(ErrTaskNotFound) {
		t.Error("Expected ErrTaskNotFound to be a not-found error")
	}
	if !IsNotFoundError(ErrUserNotFound) {
		t.Error("Expected ErrUserNotFound to be a not-found error")
	}

	wrapped := fmt.Errorf("set done: %w", ErrTaskNotFound)
	if !errors.Is(wrapped, ErrTaskNotFound) {
		t.Error("Expected wrapped error to match ErrTaskNotFound")
	}
	if !IsNotFoundError(wrapped) {
		t.Error("Expected wrapped error to be a not-found error")
	}

	if IsNotFoundError(errors.New("boom")) {
		t.Error("Expected unrelated error to not be a not-found error")
	}
}

func TestDuplicateErrorHierarchy(t *testing.T) {
	if !IsDuplicateError(ErrEmailExists) {
		t.Error("Expected ErrEmailExists to be a duplicate error")
	}
	if IsDuplicateError(ErrTaskNotFound) {
		t.Error("Expected ErrTaskNotFound to not be a duplicate error")
	}
}
