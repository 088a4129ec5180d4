package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courseware-backend/internal/shared/response"
	"courseware-backend/pkg/jwt"
	"courseware-backend/pkg/logger"
)

// Context keys do AuthMiddleware set
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware - Middleware xác thực JWT access token
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			logger.Debug("[Auth] rejected token: " + err.Error())
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "invalid token")
			c.Abort()
			return
		}

		// 4. Set claims vào context cho handler
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
