package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"modelhub-backend/internal/domains/account"
	"modelhub-backend/internal/shared/response"
)

// ContextAccountKey is where the auth middleware stores the resolved
// account DTO.
const ContextAccountKey = "currentAccount"

// AuthMiddleware validates the bearer token and resolves its subject to a
// live account. Invalid, expired and unresolvable tokens all yield the same
// 401 to the client.
func AuthMiddleware(accounts account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		dto, err := accounts.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextAccountKey, dto)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Unauthorized(c, "Could not validate credentials")
	c.Abort()
}
