package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"glowbook/config"

	"github.com/golang-jwt/jwt"
)

// signingKey resolves the HMAC secret. The loaded configuration wins, then
// the environment, then a development fallback (not for production).
func signingKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("glowbook-dev-secret")
}

// GenerateToken creates a signed JWT token for the given subject and email.
// Admin-session tokens carry a claims_admin marker so route guards can
// distinguish them from regular user tokens.
func GenerateToken(subject, email string, admin bool, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	if admin {
		claims["claims_admin"] = true
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey(), nil
	})
}

// TokenIdentity is the subset of claims the guards care about.
type TokenIdentity struct {
	Subject string
	Email   string
	Admin   bool
}

// ExtractIdentityFromToken extracts subject, email and the admin marker from
// a valid JWT token string.
func ExtractIdentityFromToken(tokenString string) (*TokenIdentity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	ident := &TokenIdentity{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if admin, ok := claims["claims_admin"].(bool); ok {
		ident.Admin = admin
	}
	return ident, nil
}

// ExtractIDFromToken extracts the subject from a valid JWT token string.
func ExtractIDFromToken(tokenString string) (string, error) {
	ident, err := ExtractIdentityFromToken(tokenString)
	if err != nil {
		return "", err
	}
	return ident.Subject, nil
}
