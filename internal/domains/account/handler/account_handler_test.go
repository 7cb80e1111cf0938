package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/domains/account/model"
	"modelhub-backend/internal/shared/middleware"
	"modelhub-backend/pkg/jwt"
)

// stubService scripts account.Service responses per test.
type stubService struct {
	registerDTO *model.AccountDTO
	registerErr error
	loginResp   *account.TokenResponse
	loginErr    error
	verifyDTO   *model.AccountDTO
	verifyErr   error
}

func (s *stubService) Register(ctx context.Context, req account.RegisterRequest) (*model.AccountDTO, error) {
	return s.registerDTO, s.registerErr
}

func (s *stubService) Login(ctx context.Context, username, password string) (*account.TokenResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubService) VerifyToken(ctx context.Context, token string) (*model.AccountDTO, error) {
	return s.verifyDTO, s.verifyErr
}

func newRouter(svc account.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccountHandler(svc)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/token", h.Token)
	r.GET("/me", middleware.AuthMiddleware(svc), h.Me)
	return r
}

func TestRegisterEndpoint_Created(t *testing.T) {
	t.Parallel()

	svc := &stubService{registerDTO: &model.AccountDTO{Username: "alice", Email: "alice@example.com"}}
	r := newRouter(svc)

	body := `{"username":"alice","email":"alice@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got model.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := &stubService{registerErr: account.ErrUsernameAlreadyExists}
	r := newRouter(svc)

	body := `{"username":"alice","email":"x@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already registered")
}

func TestTokenEndpoint_Success(t *testing.T) {
	t.Parallel()

	svc := &stubService{loginResp: &account.TokenResponse{
		AccessToken: "signed-token",
		TokenType:   "bearer",
		User:        model.AccountDTO{Username: "alice"},
	}}
	r := newRouter(svc)

	form := url.Values{"username": {"alice"}, "password": {"longenough"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got account.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bearer", got.TokenType)
	assert.Equal(t, "signed-token", got.AccessToken)
	assert.Equal(t, "alice", got.User.Username)
}

func TestTokenEndpoint_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := &stubService{loginErr: account.ErrInvalidCredentials}
	r := newRouter(svc)

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestMeEndpoint_Success(t *testing.T) {
	t.Parallel()

	svc := &stubService{verifyDTO: &model.AccountDTO{Username: "alice", Email: "alice@example.com"}}
	r := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestMeEndpoint_MissingAndExpiredTokens(t *testing.T) {
	t.Parallel()

	svc := &stubService{verifyErr: jwt.ErrTokenExpired}
	r := newRouter(svc)

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expired token - same status, same generic message.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Could not validate credentials")
}
