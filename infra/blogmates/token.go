package blogmates

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the access token's exp claim without verifying the
// signature — the client holds no key material and only uses the claim to
// report when the session will need a refresh. Undecodable tokens yield the
// zero time.
func TokenExpiry(access string) time.Time {
	if access == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
