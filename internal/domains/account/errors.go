package account

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound = errors.New("account not found")

	// Conflict - username and email are each globally unique.
	ErrUsernameAlreadyExists = errors.New("username already registered")
	ErrEmailAlreadyExists    = errors.New("email already registered")
)

// Service-level errors
var (
	// Unknown username and wrong password are deliberately the same error,
	// so the response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Token verified fine but its subject no longer resolves to an account.
	ErrUnknownSubject = errors.New("token subject does not resolve to an account")
)
