package models

import (
	"time"

	vmodels "voltid/internal/verification/models"
)

type EmailVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PhoneVerificationRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type ConfirmVerificationRequest struct {
	Reference string `json:"reference" validate:"required"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
}

type RegisterRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	EmailReference string `json:"email_reference" validate:"required"`
	PhoneReference string `json:"phone_reference" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerificationTicket is returned when a code has been sent. The code itself
// travels only through the notification channel.
type VerificationTicket struct {
	Reference string       `json:"reference"`
	Type      vmodels.Type `json:"type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type ConfirmResult struct {
	Reference string `json:"reference"`
	Verified  bool   `json:"verified"`
}

type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}
