package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	validPassword := "a-long-enough-password"

	user, err := NewUser(validEmail, validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Password != validPassword {
		t.Errorf("Expected password to be retained until hashing, got %q", user.Password)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid emails
	_, err = NewUser("", validPassword)
	if err != ErrEmailEmpty {
		t.Errorf("Expected error %v, got %v", ErrEmailEmpty, err)
	}

	for _, email := range []string{"invalidemail", "@nodomain.com", "user@", "user@nodot"} {
		if _, err := NewUser(email, validPassword); err != ErrInvalidEmail {
			t.Errorf("Expected error %v for email %q, got %v", ErrInvalidEmail, email, err)
		}
	}

	// Password bounds
	_, err = NewUser(validEmail, "tooshort")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	_, err = NewUser(validEmail, strings.Repeat("x", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$somethinghashed",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrUserIDEmpty, err)
	}

	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); err != ErrEmailEmpty {
		t.Errorf("Expected error %v, got %v", ErrEmailEmpty, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrHashedPasswordEmpty {
		t.Errorf("Expected error %v, got %v", ErrHashedPasswordEmpty, err)
	}
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		Password:       "plaintext-password-here",
		HashedPassword: "$2a$10$somethinghashed",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := string(data)
	if strings.Contains(out, "plaintext-password-here") || strings.Contains(out, "somethinghashed") {
		t.Errorf("Expected serialized user to omit password material, got %s", out)
	}
}
