package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rickhouse-server/internal/authutils"
	"rickhouse-server/internal/models"
)

// UserIDKey is the gin context key the authenticated user's ID is stored
// under.
const UserIDKey = "userID"

// GinAuthMiddleware validates the Bearer token on every request and stores
// the authenticated user ID in the gin context.
func GinAuthMiddleware(verifier authutils.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			log.Debug("Token verification failed", zap.Error(err))
			message := "Token is invalid"
			switch {
			case errors.Is(err, models.ErrTokenExpired):
				message = "Token has expired"
			case errors.Is(err, models.ErrTokenMalformed):
				message = "Token is malformed"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		// Also expose the user ID on the request context for code that only
		// sees a context.Context.
		ctx := context.WithValue(c.Request.Context(), models.UserContextKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
