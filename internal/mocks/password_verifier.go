package mocks

import "errors"

// PlaintextVerifier is an auth.PasswordVerifier that compares the two
// strings directly. It pairs with MemoryUserStore, which stores the
// plaintext as the hash.
type PlaintextVerifier struct {
	// Err, when set, is returned by every Compare call.
	Err error
}

// Compare implements auth.PasswordVerifier.
func (v *PlaintextVerifier) Compare(hashedPassword, password string) error {
	if v.Err != nil {
		return v.Err
	}
	if hashedPassword != password {
		return errPasswordMismatch
	}
	return nil
}

var errPasswordMismatch = errors.New("password mismatch")
