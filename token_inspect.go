package sdk

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultRefreshSkew = 60 * time.Second

func isJWTLikeToken(token string) bool {
	t := strings.TrimSpace(token)
	if t == "" {
		return false
	}
	// JWTs have 3 base64url segments separated by '.'.
	return strings.Count(t, ".") >= 2
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification is the server's job; the client only wants to know whether
// the token is worth sending at all.
func tokenExpiry(token string) (time.Time, bool) {
	if !isJWTLikeToken(token) {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenExpiringWithin reports whether the token is a JWT whose exp claim
// falls inside the skew window. Opaque tokens report false: their validity
// is only discoverable by using them.
func tokenExpiringWithin(token string, skew time.Duration) bool {
	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}
	return time.Until(exp) <= skew
}
