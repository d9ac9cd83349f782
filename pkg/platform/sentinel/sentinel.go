package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: a uniqueness rule rejected the write
//   - ErrExpired: the record's time window has passed
//   - ErrAlreadyUsed: a one-time record was already consumed
//   - ErrInvalidState: a compare-and-set update found the row in another state
//   - ErrUnavailable: a backing service is temporarily unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
