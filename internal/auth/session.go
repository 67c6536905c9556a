// Package auth issues and validates session tokens. There are no
// credentials: signing in records a display name, and logout discards
// the session without touching inventory state.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stocktake/internal/kvstore"
)

// Claims are the session token claims.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// SessionExpiry is the session token lifetime.
const SessionExpiry = 24 * time.Hour

// secretKey is the adapter key holding the signing secret.
const secretKey = "session_secret"

// GenerateToken creates a session token for a display name with a unique JTI.
func GenerateToken(secret, name string) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// LoadSecret returns the signing secret from the store, generating and
// persisting one on first run so sessions survive restarts.
func LoadSecret(ctx context.Context, kv *kvstore.Store) (string, error) {
	raw, err := kv.Get(ctx, secretKey)
	if err != nil {
		return "", fmt.Errorf("loading session secret: %w", err)
	}
	if raw != nil {
		return string(raw), nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	if err := kv.Set(ctx, secretKey, []byte(secret)); err != nil {
		return "", fmt.Errorf("storing session secret: %w", err)
	}
	return secret, nil
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
