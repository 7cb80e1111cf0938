package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/domains/account/model"
	"modelhub-backend/internal/shared/middleware"
	"modelhub-backend/internal/shared/response"
	"modelhub-backend/pkg/logger"
)

// AccountHandler serves /register, /token and /me.
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register handles POST /register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// Token handles POST /token. Credentials arrive form-encoded, OAuth2
// password-flow style.
func (h *AccountHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		response.BadRequest(c, "username and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me handles GET /me. The auth middleware has already resolved the bearer
// token to an account.
func (h *AccountHandler) Me(c *gin.Context) {
	current, ok := c.Get(middleware.ContextAccountKey)
	if !ok {
		response.Unauthorized(c, "Could not validate credentials")
		return
	}

	dto, ok := current.(*model.AccountDTO)
	if !ok {
		response.Unauthorized(c, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, dto)
}

// handleError maps domain errors onto HTTP status codes. Internal details
// stay in the server log.
func (h *AccountHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrUsernameAlreadyExists):
		response.BadRequest(c, "Username already registered")
	case errors.Is(err, account.ErrEmailAlreadyExists):
		response.BadRequest(c, "Email already registered")
	case errors.Is(err, account.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		response.Unauthorized(c, "Incorrect username or password")
	default:
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("account request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
