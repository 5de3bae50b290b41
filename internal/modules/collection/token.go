package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

const actionCollect = "collect"

// TokenClaims is the signed payload of a collection token. The registered
// expiry claim gives the token its own embedded lifetime, independent of the
// expiry persisted on the booking row.
type TokenClaims struct {
	BookingID int64  `json:"booking_id"`
	Action    string `json:"action"`
	Flow      string `json:"flow"`
	Issuer    string `json:"issuer"`
	jwtlib.RegisteredClaims
}

func signToken(secret []byte, bookingID int64, flow domain.Flow, issuer uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		BookingID: bookingID,
		Action:    actionCollect,
		Flow:      string(flow),
		Issuer:    issuer.String(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifyToken(secret []byte, raw string) (*TokenClaims, error) {
	token, err := jwtlib.ParseWithClaims(raw, &TokenClaims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// hashToken derives the digest persisted in place of the raw token. The
// store only ever holds this fingerprint, usable solely for equality checks.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
