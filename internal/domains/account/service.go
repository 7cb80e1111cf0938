package account

import (
	"context"

	"modelhub-backend/internal/domains/account/model"
)

// Service is the business-logic contract for accounts and tokens.
type Service interface {
	// Register creates an account with a bcrypt-hashed password.
	Register(ctx context.Context, req RegisterRequest) (*model.AccountDTO, error)

	// Login authenticates and issues an access token (30-minute lifetime).
	// Returns ErrInvalidCredentials for both unknown username and wrong
	// password.
	Login(ctx context.Context, username, password string) (*TokenResponse, error)

	// VerifyToken validates a bearer token and resolves its subject to a
	// live account. Fails with jwt.ErrInvalidToken, jwt.ErrTokenExpired or
	// ErrUnknownSubject.
	VerifyToken(ctx context.Context, token string) (*model.AccountDTO, error)
}
