package models

import (
	"strings"
	"time"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

// User is a registered account. Email and phone are stored normalized and
// are each unique across the platform.
type User struct {
	ID            id.UserID   `json:"id"`
	TenantID      id.TenantID `json:"tenant_id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	PasswordHash  string      `json:"-"`
	EmailVerified bool        `json:"email_verified"`
	PhoneVerified bool        `json:"phone_verified"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func NewUser(
	userID id.UserID,
	tenantID id.TenantID,
	firstName, lastName, email, phone, passwordHash string,
	now time.Time,
) (*User, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant is required")
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "first and last name are required")
	}
	if email == "" || phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email and phone are required")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	return &User{
		ID:           userID,
		TenantID:     tenantID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
