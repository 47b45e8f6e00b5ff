package auth

import "time"

// Principal is the authenticated caller as described by a verified token.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func PrincipalFromClaims(claims *Claims) *Principal {
	p := &Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}

	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}

	return p
}
