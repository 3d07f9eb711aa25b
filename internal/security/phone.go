package security

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPhone is returned for numbers that are not 10-digit Indian mobiles
var ErrInvalidPhone = errors.New("phone number must be 10 digits")

// NormalizePhoneNumber strips separators and a +91/91/0 prefix and returns
// the bare 10-digit number.
func NormalizePhoneNumber(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		if r == ' ' || r == '-' || r == '+' || r == '(' || r == ')' {
			return -1
		}
		return 'x'
	}, phone)

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) != 10 || strings.ContainsRune(digits, 'x') {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// NewValidator returns a validator with the "phone" tag registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := NormalizePhoneNumber(fl.Field().String())
		return err == nil
	})
	return v
}
