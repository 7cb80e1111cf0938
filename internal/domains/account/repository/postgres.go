package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/domains/account/model"
	"modelhub-backend/pkg/cache"
)

// accountCacheTTL bounds staleness of cached accounts. Accounts are
// immutable after creation, so a short TTL only limits memory, not
// correctness.
const accountCacheTTL = 15 * time.Minute

// cachedAccount is the Redis shape of an account. model.Account hides the
// password hash from JSON, so marshaling it directly would drop the hash on
// every cache hit and break password checks until the entry expires.
type cachedAccount struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCached(a *model.Account) cachedAccount {
	return cachedAccount{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		DisplayName:  a.DisplayName,
		AvatarURL:    a.AvatarURL,
		CreatedAt:    a.CreatedAt,
	}
}

func (c cachedAccount) toAccount() *model.Account {
	return &model.Account{
		ID:           c.ID,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		DisplayName:  c.DisplayName,
		AvatarURL:    c.AvatarURL,
		CreatedAt:    c.CreatedAt,
	}
}

// postgresRepository implements account.Repository. The table name comes
// from config so deployments can keep the catalog names they already use.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	table string
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache, table string) account.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
		table: table,
	}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, username, email, password_hash,
			display_name, avatar_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.table)

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.DisplayName,
		a.AvatarURL,
		a.CreatedAt,
	)

	if err != nil {
		// The unique indexes are the authoritative enforcement point for
		// username/email uniqueness; translate code 23505 into domain errors
		// so concurrent check-then-insert races still surface cleanly.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return account.ErrUsernameAlreadyExists
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return account.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

// FindByUsername is on the hot path of every authenticated request, so it
// runs cache-aside against Redis.
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	cacheKey := "account:username:" + username

	var cached cachedAccount
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.toAccount(), nil
	}

	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, display_name, avatar_url, created_at
		FROM %s
		WHERE username = $1
	`, r.table)

	var a model.Account
	if err := r.scanOne(ctx, &a, query, username); err != nil {
		return nil, err
	}

	// Ignore cache set errors - a request must not fail because Redis is
	// unavailable.
	_ = r.cache.Set(ctx, cacheKey, toCached(&a), accountCacheTTL)

	return &a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, display_name, avatar_url, created_at
		FROM %s
		WHERE email = $1
	`, r.table)

	var a model.Account
	if err := r.scanOne(ctx, &a, query, email); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *postgresRepository) exists(ctx context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`, r.table, column)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s exists: %w", column, err)
	}
	return exists, nil
}

func (r *postgresRepository) scanOne(ctx context.Context, a *model.Account, query string, arg any) error {
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.AvatarURL,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}
	return nil
}
