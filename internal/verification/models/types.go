package models

import "time"

type Type string

const (
	TypePhone Type = "PHONE"
	TypeEmail Type = "EMAIL"
	TypeOAuth Type = "OAUTH"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePhone, TypeEmail, TypeOAuth:
		return true
	}
	return false
}

// Window is the pair of lifetimes applied when a verification is created.
type Window struct {
	OTP     time.Duration
	Overall time.Duration
}

var windows = map[Type]Window{
	TypePhone: {OTP: 15 * time.Minute, Overall: time.Hour},
	TypeEmail: {OTP: 30 * time.Minute, Overall: 3 * time.Hour},
	TypeOAuth: {OTP: 10 * time.Minute, Overall: time.Hour},
}

func (t Type) Window() Window {
	return windows[t]
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusVerified  Status = "VERIFIED"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// IsResolved reports whether the identifier was proven.
func (s Status) IsResolved() bool {
	return s == StatusVerified || s == StatusCompleted
}

// CanTransitionTo allows only moves out of PENDING.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next != StatusPending && next.IsValid()
}
