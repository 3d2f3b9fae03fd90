package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the HS256 bearer tokens returned by
// the auth endpoints.
type TokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewTokenService creates a token service.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{secretKey: []byte(secret), issuer: issuer, ttl: ttl}
}

func (t *TokenService) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue signs a token for an authenticated account.
func (t *TokenService) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iss":     t.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
		"jti":     t.generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secretKey)
}

// Validate parses a bearer token and returns the user id and role.
func (t *TokenService) Validate(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("malformed token claims")
	}
	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	if userID == "" || role == "" {
		return "", "", fmt.Errorf("malformed token claims")
	}
	return userID, role, nil
}
