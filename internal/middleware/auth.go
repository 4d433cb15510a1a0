package middleware

import (
	"errors"
	"net/http"
	"strings"

	"royalcert/internal/logging"
	"royalcert/internal/models"
	"royalcert/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const SessionUserKey = "user_id"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth resolves the caller from a bearer token, falling back to the
// session cookie, and stores the user on the context.
func RequireAuth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			user *models.User
			err  error = service.ErrUnauthorized
		)

		if tok := bearerToken(c); tok != "" {
			user, err = authSvc.Authenticate(c.Request.Context(), tok)
		} else if uid, ok := sessions.Default(c).Get(SessionUserKey).(string); ok {
			user, err = authSvc.Resolve(c.Request.Context(), uid)
		}

		if err != nil {
			var svcErr service.Error
			if !errors.As(err, &svcErr) {
				logging.Log.Error("auth lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Sunucu hatası"})
				return
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": service.ErrUnauthorized.Error()})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// RequireRole lets the listed roles through. Admin always passes.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{models.RoleAdmin: {}}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": service.ErrUnauthorized.Error()})
			return
		}
		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": service.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}
