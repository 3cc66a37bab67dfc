package services

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUpper    = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower    = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber   = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial  = errors.New("password must contain at least one special character")
	ErrPasswordCommon     = errors.New("password is too common")
	ErrPasswordSequential = errors.New("password contains sequential characters")
	ErrPasswordRepeating  = errors.New("password contains repeating characters")
)

// PasswordValidator validates passwords against security requirements
type PasswordValidator struct {
	minLength       int
	maxRun          int
	requireUpper    bool
	requireLower    bool
	requireNumber   bool
	requireSpecial  bool
	commonPasswords map[string]bool
}

// NewPasswordValidator creates a new password validator with default settings
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength:      8,
		maxRun:         3,
		requireUpper:   true,
		requireLower:   true,
		requireNumber:  true,
		requireSpecial: true,
		commonPasswords: map[string]bool{
			"password":   true,
			"password1!": true,
			"p@ssw0rd":   true,
			"qwerty123!": true,
			"welcome1!":  true,
			"letmein1!":  true,
			"admin123!":  true,
		},
	}
}

// ValidatePassword checks if a password meets all security requirements.
// Runs of maxRun identical or consecutive characters ("aaa", "123", "cba")
// are rejected.
func (pv *PasswordValidator) ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < pv.minLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	repeat, ascending, descending := 1, 1, 1

	for i, char := range runes {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}

		if i == 0 {
			continue
		}
		prev := runes[i-1]

		repeat = bump(repeat, char == prev)
		if repeat >= pv.maxRun {
			return ErrPasswordRepeating
		}

		ascending = bump(ascending, char == prev+1 && isAlnum(char) && isAlnum(prev))
		descending = bump(descending, char == prev-1 && isAlnum(char) && isAlnum(prev))
		if ascending >= pv.maxRun || descending >= pv.maxRun {
			return ErrPasswordSequential
		}
	}

	if pv.requireUpper && !hasUpper {
		return ErrPasswordNoUpper
	}
	if pv.requireLower && !hasLower {
		return ErrPasswordNoLower
	}
	if pv.requireNumber && !hasNumber {
		return ErrPasswordNoNumber
	}
	if pv.requireSpecial && !hasSpecial {
		return ErrPasswordNoSpecial
	}

	if pv.commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}

	return nil
}

func bump(n int, cont bool) int {
	if cont {
		return n + 1
	}
	return 1
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HashPassword hashes a validated password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
