package auth

import (
	"sort"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"
)

// ValidationError carries one message per rejected form field. A form that
// fails validation never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func checkEmail(f fieldErrors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		f["email"] = "Email is required"
	case !govalidator.IsEmail(strings.TrimSpace(email)):
		f["email"] = "Email is invalid"
	}
}

const minPasswordLength = 8

// PasswordStrength scores a password from 0 to 4: one point each for
// length, an upper-case letter, a digit and a symbol.
func PasswordStrength(pw string) int {
	var upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	score := 0
	for _, ok := range []bool{len(pw) >= minPasswordLength, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// StrengthLabel names a PasswordStrength score for display.
func StrengthLabel(score int) string {
	switch {
	case score <= 1:
		return "Weak"
	case score == 2:
		return "Fair"
	case score == 3:
		return "Good"
	default:
		return "Strong"
	}
}
