package jwttoken

import (
	"time"

	id "voltid/pkg/domain"
	authmw "voltid/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *AccessTokenClaims) *authmw.JWTClaims {
	return &authmw.JWTClaims{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		JTI:      claims.ID,
	}
}

// JWTServiceAdapter exposes JWTService to the RequireAuth middleware and to
// the auth service's token issuer port.
type JWTServiceAdapter struct {
	service *JWTService
	ttl     time.Duration
}

func NewJWTServiceAdapter(service *JWTService, ttl time.Duration) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service, ttl: ttl}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}

// IssueAccessToken signs a token with the configured lifetime.
func (a *JWTServiceAdapter) IssueAccessToken(userID id.UserID, tenantID id.TenantID) (string, time.Duration, error) {
	token, err := a.service.GenerateAccessToken(userID, tenantID, a.ttl)
	if err != nil {
		return "", 0, err
	}
	return token, a.ttl, nil
}
