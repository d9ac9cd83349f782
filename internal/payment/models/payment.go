package models

import (
	"strings"
	"time"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

// PaymentMethod is a tokenized card a user can charge sessions to. Only the
// provider's token and display details are kept; card data never reaches us.
//
// Invariants:
//   - Last4 is exactly four digits
//   - ExpMonth is 1..12
//   - at most one method per user has IsDefault set
type PaymentMethod struct {
	ID            id.PaymentMethodID `json:"id"`
	UserID        id.UserID          `json:"user_id"`
	Provider      string             `json:"provider"`
	ProviderToken string             `json:"-"`
	Brand         string             `json:"brand"`
	Last4         string             `json:"last4"`
	ExpMonth      int                `json:"exp_month"`
	ExpYear       int                `json:"exp_year"`
	IsDefault     bool               `json:"is_default"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewPaymentMethod(
	methodID id.PaymentMethodID,
	userID id.UserID,
	provider, providerToken, brand, last4 string,
	expMonth, expYear int,
	now time.Time,
) (*PaymentMethod, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || strings.TrimSpace(providerToken) == "" {
		return nil, dErrors.New(dErrors.CodePaymentMethodInvalid, "provider and provider token are required")
	}
	if !isDigits(last4, 4) {
		return nil, dErrors.New(dErrors.CodePaymentMethodInvalid, "last4 must be four digits")
	}
	if expMonth < 1 || expMonth > 12 {
		return nil, dErrors.New(dErrors.CodePaymentMethodInvalid, "exp_month must be between 1 and 12")
	}
	m := &PaymentMethod{
		ID:            methodID,
		UserID:        userID,
		Provider:      provider,
		ProviderToken: providerToken,
		Brand:         strings.TrimSpace(brand),
		Last4:         last4,
		ExpMonth:      expMonth,
		ExpYear:       expYear,
		CreatedAt:     now,
	}
	if m.Expired(now) {
		return nil, dErrors.New(dErrors.CodePaymentMethodInvalid, "card has expired")
	}
	return m, nil
}

// Expired reports whether the card's expiry month has fully passed.
func (m *PaymentMethod) Expired(now time.Time) bool {
	firstOfNextMonth := time.Date(m.ExpYear, time.Month(m.ExpMonth)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(firstOfNextMonth)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type AddPaymentMethodRequest struct {
	Provider      string `json:"provider" validate:"required,max=50"`
	ProviderToken string `json:"provider_token" validate:"required,max=255"`
	Brand         string `json:"brand" validate:"required,max=50"`
	Last4         string `json:"last4" validate:"required,len=4,numeric"`
	ExpMonth      int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear       int    `json:"exp_year" validate:"required,min=2000,max=2100"`
}
