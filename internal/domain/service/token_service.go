package service

import "time"

// TokenService creates and verifies the signed, self-contained bearer tokens
// that prove a prior successful login. Tokens are stateless: verification is
// pure recomputation against the signing secret, never a store lookup.
type TokenService interface {
	// Issue creates a signed token carrying the subject, issuance time and
	// expiry. The validity window is fixed at construction.
	Issue(subject string) (string, error)

	// ExtractSubject verifies the token's signature and expiry and returns
	// the embedded subject. Malformed, tampered or expired tokens yield
	// ok == false; this method never fails any other way.
	ExtractSubject(tokenString string) (subject string, ok bool)

	// TokenTTL returns the configured validity window of issued tokens.
	TokenTTL() time.Duration
}
