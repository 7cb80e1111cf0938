package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/domains/account/model"
	"modelhub-backend/pkg/jwt"
)

// accountService implements account.Service.
type accountService struct {
	repo       account.Repository
	jwtManager *jwt.Manager
	bcryptCost int
}

func NewAccountService(repo account.Repository, jwtManager *jwt.Manager, bcryptCost int) account.Service {
	return &accountService{
		repo:       repo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

func (s *accountService) Register(ctx context.Context, req account.RegisterRequest) (*model.AccountDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-checks give clean errors on the common path; the unique indexes
	// remain authoritative when two registrations race.
	if exists, err := s.repo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	} else if exists {
		return nil, account.ErrUsernameAlreadyExists
	}

	if exists, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	} else if exists {
		return nil, account.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatarURL := req.AvatarURL
	if avatarURL == "" {
		avatarURL = fmt.Sprintf("https://avatars.dicebear.com/api/avataaars/%s.svg", req.Username)
	}

	newAccount := &model.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  req.Name,
		AvatarURL:    avatarURL,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, newAccount); err != nil {
		return nil, err
	}

	dto := newAccount.ToDTO()
	return &dto, nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*account.TokenResponse, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Unknown username and wrong password are indistinguishable to the
		// caller - no username enumeration.
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	// The token endpoint always issues with the 30-minute access lifetime,
	// not the 15-minute service default.
	token, _, err := s.jwtManager.Issue(a.Username, jwt.AccessTokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &account.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        a.ToDTO(),
	}, nil
}

func (s *accountService) VerifyToken(ctx context.Context, token string) (*model.AccountDTO, error) {
	username, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, err // jwt.ErrInvalidToken or jwt.ErrTokenExpired
	}

	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, account.ErrUnknownSubject
		}
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}
