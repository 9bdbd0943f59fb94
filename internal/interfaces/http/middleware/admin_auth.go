package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/interfaces/http/response"
)

const (
	// AdminUserKey holds the authenticated admin username in the gin context
	AdminUserKey = "admin_user"

	msgAdminAuthRequired = "需要管理员登录"
)

// AdminAuthenticator is the part of the admin auth usecase the middleware needs
type AdminAuthenticator interface {
	Enabled() bool
	CheckCredentials(username, password string) bool
	Authenticate(token string) (string, error)
}

// AdminAuthMiddleware accepts HTTP Basic credentials or a Bearer token
// issued by the admin login endpoint.
func AdminAuthMiddleware(auth AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			response.Abort(c, domainerrors.Unauthorized(msgAdminAuthRequired))
			return
		}

		if username, password, ok := c.Request.BasicAuth(); ok {
			if !auth.CheckCredentials(username, password) {
				c.Header("WWW-Authenticate", `Basic realm="admin"`)
				response.Abort(c, domainerrors.Unauthorized(msgAdminAuthRequired))
				return
			}
			c.Set(AdminUserKey, username)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Abort(c, domainerrors.Unauthorized(msgAdminAuthRequired))
			return
		}

		username, err := auth.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(AdminUserKey, username)
		c.Next()
	}
}
