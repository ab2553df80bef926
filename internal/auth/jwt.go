package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the guest identity issued by the reservation system at
// check-in, plus the reservation context the resolver needs: which
// reservation the guest is on and its stay bounds. Roles and permissions are
// deliberately absent; this service only identifies.
type Claims struct {
	GuestID       string `json:"sub"`
	ReservationID string `json:"reservation_id,omitempty"`
	StayStart     string `json:"stay_start,omitempty"` // YYYY-MM-DD
	StayEnd       string `json:"stay_end,omitempty"`   // YYYY-MM-DD
	jwt.RegisteredClaims
}

// JWTManager manages guest token creation and validation.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateGuestToken creates a signed JWT for the given guest and
// reservation context. Stay bounds are date-only wire values.
func (m *JWTManager) GenerateGuestToken(guestID, reservationID, stayStart, stayEnd string) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		GuestID:       guestID,
		ReservationID: reservationID,
		StayStart:     stayStart,
		StayEnd:       stayEnd,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   guestID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}

	return signed, nil
}

// ParseAndValidate validates a JWT and returns the parsed claims.
func (m *JWTManager) ParseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure token is signed using HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %T", t.Method)
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid jwt token")
	}

	return claims, nil
}
