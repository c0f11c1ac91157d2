// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the registration confirmation message.
type RegisterOutput struct {
	Message string `json:"message"`
}

// LoginOutput returns the issued bearer token after a successful login.
type LoginOutput struct {
	Token string `json:"token"`
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., HTTP handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account with the default user role. It fails
	// with the username-already-exists domain error on duplicates.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the credentials and issues a fresh bearer token. An
	// unknown username and a wrong password both fail with the same
	// invalid-credentials domain error.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
