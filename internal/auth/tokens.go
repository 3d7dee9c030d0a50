package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken issues an HS256 bearer token carrying the user id in the "id"
// claim, mirroring what API clients expect to round-trip.
func signToken(secret []byte, userID string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies signature and expiry and extracts the user id and the
// token's expiry time. Any parse or claim failure maps to ErrInvalidToken.
func parseToken(secret []byte, token string) (string, time.Time, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", time.Time{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", time.Time{}, ErrInvalidToken
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return "", time.Time{}, ErrInvalidToken
	}

	return userID, expiry.Time, nil
}
