package service

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// ValidPassword reports whether the password meets the account policy:
// at least 8 characters, with at least one letter and one digit. There is
// no symbol or case requirement.
func ValidPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// PasswordHasher turns a plaintext password into its stored form and checks
// candidates against it. The login workflow only ever sees this interface,
// so the algorithm can be swapped without touching workflow logic.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(storedHash, password string) bool
}

// MD5Hasher produces the lowercase hex MD5 digests stored by earlier
// revisions of the app. It exists for compatibility with those records;
// use BcryptHasher for anything new.
type MD5Hasher struct{}

// Hash digests the password. An empty password is a precondition violation
// rather than the silent empty-string output of the legacy code.
func (MD5Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
	}
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h MD5Hasher) Verify(storedHash, password string) bool {
	computed, err := h.Hash(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// BcryptHasher hashes with bcrypt at the configured cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
