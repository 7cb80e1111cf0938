package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/domains/account/model"
	"modelhub-backend/pkg/jwt"
)

// fakeRepo keeps accounts in memory and enforces uniqueness the way the
// database indexes do.
type fakeRepo struct {
	byUsername map[string]*model.Account
	byEmail    map[string]*model.Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byUsername: map[string]*model.Account{},
		byEmail:    map[string]*model.Account{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, a *model.Account) error {
	if _, ok := f.byUsername[a.Username]; ok {
		return account.ErrUsernameAlreadyExists
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return account.ErrEmailAlreadyExists
	}
	f.byUsername[a.Username] = a
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeRepo) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	a, ok := f.byUsername[username]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newService(repo account.Repository) account.Service {
	return NewAccountService(repo, jwt.NewManager("test-secret"), bcrypt.MinCost)
}

func validRequest() account.RegisterRequest {
	return account.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "longenough",
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())

	dto, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.NotEmpty(t, dto.ID)
	assert.Contains(t, dto.AvatarURL, "alice")

	// The public shape must never leak the password or its hash.
	data, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "longenough")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	// Same username with a different email still conflicts.
	dup := validRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, account.ErrUsernameAlreadyExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	dup := validRequest()
	dup.Username = "bob"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, account.ErrEmailAlreadyExists)
}

func TestRegister_RaceResolvedByRepository(t *testing.T) {
	t.Parallel()

	// Pre-check passes but the insert hits the unique index - the conflict
	// sentinel must come through untranslated.
	repo := &racingRepo{fakeRepo: newFakeRepo()}
	svc := newService(repo)

	_, err := svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, account.ErrUsernameAlreadyExists)
}

type racingRepo struct {
	*fakeRepo
}

func (r *racingRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (r *racingRepo) Create(ctx context.Context, a *model.Account) error {
	return account.ErrUsernameAlreadyExists
}

func TestRegister_ValidationFailure(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())

	req := validRequest()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice", "longenough")
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_UnknownUserAndWrongPasswordLookIdentical(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "nobody", "whatever1")
	_, errWrongPw := svc.Login(ctx, "alice", "wrongpass")

	assert.ErrorIs(t, errUnknown, account.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, account.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice", "longenough")
	require.NoError(t, err)

	dto, err := svc.VerifyToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())

	// Issue refuses non-positive lifetimes, so sign the expired token
	// directly with the same secret.
	claims := jwtlib.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyToken_UnknownSubject(t *testing.T) {
	t.Parallel()

	manager := jwt.NewManager("test-secret")
	svc := NewAccountService(newFakeRepo(), manager, bcrypt.MinCost)

	// Valid token but no account behind the subject.
	tok, _, err := manager.Issue("ghost", time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), tok)
	assert.ErrorIs(t, err, account.ErrUnknownSubject)
}

func TestVerifyToken_Garbage(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeRepo())

	_, err := svc.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
