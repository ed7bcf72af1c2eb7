package middleware

import (
	"strings"

	"github.com/MileWise/milewise-backend/config"
	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token and stores the authenticated user
// ID in the gin context under UserIDKey. Tokens are HS256-signed with the
// server's JWT secret; the subject claim carries the user ID.
func AuthMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warnw("No bearer token provided", "path", c.Request.URL.Path)
			_ = c.Error(apperrors.AuthenticationFailed("Authentication required"))
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JwtSecretKey), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			log.Warnw("Token validation failed", "path", c.Request.URL.Path, "token", logger.MaskJWT(tokenStr), "error", err)
			_ = c.Error(apperrors.AuthenticationFailed("Invalid or expired token"))
			c.Abort()
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			log.Warnw("Token missing subject claim", "path", c.Request.URL.Path)
			_ = c.Error(apperrors.AuthenticationFailed("Invalid token claims"))
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), subject)
		c.Set("user_id", subject)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID stored by AuthMiddleware.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}
