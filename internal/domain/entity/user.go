// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential record for one account. The username is unique
// across all users; uniqueness is enforced by the storage layer.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login identifier, the subject embedded in issued tokens.
	Email        string    // The user's contact email.
	PasswordHash string    // One-way salted hash of the password. Never the plaintext.
	Role         Role      // The single role granted at registration.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Roles returns the user's capability set. The model is effectively
// single-role, but the gate works on a set. An unrecognized role string
// grants nothing.
func (u *User) Roles() Roles {
	if !u.Role.IsValid() {
		return nil
	}

	return Roles{u.Role}
}
