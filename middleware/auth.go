package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/common/logger"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
	"go.uber.org/zap"
)

const (
	UserContextKey   = "userID"
	CallerContextKey = "caller"
)

// Authenticate resolves the caller once per request. A request without a
// bearer token proceeds as anonymous; a bearer token that fails validation is
// rejected with 401.
func Authenticate(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(CallerContextKey, services.Caller{Role: models.RoleAnonymous})
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(apperrors.ErrInvalidToken.Code, apperrors.ErrInvalidToken)
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token), services.TokenTypeAccess)
		if err != nil || claims.Role == models.RoleAnonymous {
			logger.Warn(c, "rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(apperrors.ErrInvalidToken.Code, apperrors.ErrInvalidToken)
			return
		}

		userID := claims.UserID
		c.Set(UserContextKey, userID.String())
		c.Set(CallerContextKey, services.Caller{UserID: &userID, Role: claims.Role})
		c.Next()
	}
}

// GetCaller returns the caller set by Authenticate, or an anonymous one.
func GetCaller(c *gin.Context) services.Caller {
	if v, ok := c.Get(CallerContextKey); ok {
		if caller, ok := v.(services.Caller); ok {
			return caller
		}
	}
	return services.Caller{Role: models.RoleAnonymous}
}
