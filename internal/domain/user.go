package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User
var (
	ErrUserIDEmpty         = errors.New("user ID cannot be empty")
	ErrEmailEmpty          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrHashedPasswordEmpty = errors.New("hashed password cannot be empty")
)

// User represents a registered account. The user's UUID is the owner
// identity every task is scoped to.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only populated during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and plaintext password.
// The caller is responsible for hashing the password before storage.
// Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Email == "" {
		return ErrEmailEmpty
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// Length bounds rather than character classes; the upper bound
		// is bcrypt's 72-byte input limit.
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrHashedPasswordEmpty
	}

	return nil
}

// validEmailFormat performs a basic structural check of an email address:
// a local part, an @, and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
