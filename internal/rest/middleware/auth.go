package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/billora/billora/internal/auth"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware validates the Bearer token in the Authorization
// header and sets the user ID and email in the request context for
// downstream handlers.
func AuthenticateMiddleware(authService *auth.Service, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, types.CtxUserEmail, claims.Email)
		ctx = context.WithValue(ctx, types.CtxJWT, tokenString)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
