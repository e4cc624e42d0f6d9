package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleClient is the role claim stamped on session tokens issued to clients.
const RoleClient = "client"

// Claims defines the JWT claims structure for client sessions.
type Claims struct {
	ClientID int64  `json:"client_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens. It is constructed once at
// startup from configuration and injected where needed; the signing secret
// is never package-level state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a TokenManager with the given secret, token
// lifetime and issuer claim.
func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// GenerateAccessToken creates a signed session token binding the client ID
// and role.
func (tm *TokenManager) GenerateAccessToken(clientID int64, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ClientID: clientID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tm.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token string.
// It returns the claims if the token is valid, otherwise an error.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
