// Package password hashes and checks user passwords with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at sign-up.
const MinLength = 8

var (
	ErrMismatch = errors.New("password: does not match")
	ErrTooLong  = errors.New("password: longer than 72 bytes")
	ErrHash     = errors.New("password: hashing failed")
)

// Hash returns the bcrypt hash of plain at the default cost.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", errors.Join(ErrHash, err)
	}
	return string(h), nil
}

// Compare returns nil when plain matches hash and ErrMismatch otherwise.
// A malformed hash also yields ErrMismatch.
func Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
