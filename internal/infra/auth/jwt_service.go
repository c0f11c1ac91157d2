// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alexandruvladut/articles-rest-api/config"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing tokens. Read-only after startup.
	tokenTTL time.Duration // Validity window for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
// The token TTL defaults to 24h in config and bounds how long a stolen
// token stays usable, since there is no revocation.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:   cfg.SecretKey.Token,
		tokenTTL: ttl,
	}, nil
}

// Issue creates a signed token embedding the subject, issuance time and expiry.
func (s *jwtService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,                    // Subject (who the token is for)
		"iat": now.Unix(),                 // Issued At
		"exp": now.Add(s.tokenTTL).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ExtractSubject verifies the signature and expiry and returns the embedded
// subject. Any failure mode collapses to ok == false; the caller never sees
// an error, only the absence of a subject.
func (s *jwtService) ExtractSubject(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", false
	}

	return subject, true
}

// TokenTTL returns the configured validity window of issued tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.tokenTTL
}
