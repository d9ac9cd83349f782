package models

import (
	"net/mail"
	"strings"

	dErrors "voltid/pkg/domain-errors"
)

// NormalizeEmail lower-cases and trims an address and checks its syntax.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", dErrors.New(dErrors.CodeValidation, "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
	}
	return email, nil
}

// NormalizePhone strips formatting characters and returns the E.164 form.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", dErrors.New(dErrors.CodeValidation, "phone must be an E.164 phone number")
		}
	}
	phone := b.String()
	digits := strings.TrimPrefix(phone, "+")
	if !strings.HasPrefix(phone, "+") || len(digits) < 8 || len(digits) > 15 || digits[0] == '0' {
		return "", dErrors.New(dErrors.CodeValidation, "phone must be an E.164 phone number")
	}
	return phone, nil
}
