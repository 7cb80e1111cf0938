package account

import (
	"context"

	"modelhub-backend/internal/domains/account/model"
)

// Repository is the data-access contract for accounts. Username and email
// lookups are backed by unique indexes; those indexes are the authoritative
// uniqueness enforcement, not the Exists* pre-checks.
type Repository interface {
	// Create inserts a new account.
	// Returns ErrUsernameAlreadyExists or ErrEmailAlreadyExists when the
	// corresponding unique index is violated.
	Create(ctx context.Context, a *model.Account) error

	// FindByUsername looks an account up for login and token resolution.
	// Returns ErrAccountNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*model.Account, error)

	// FindByEmail returns ErrAccountNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
