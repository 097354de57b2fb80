// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"jobhub/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new principal.
// An empty Role registers a USER.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput carries the tokens issued by register, login and refresh.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the authentication flows.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh issues a new access token for a registered refresh token. The refresh token is
	// returned unchanged unless rotation is enabled.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session of the refresh token. Unknown tokens are not an error.
	Logout(ctx context.Context, refreshToken string) error
}
