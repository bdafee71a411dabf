package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"paylink/pkg/utils"
)

const AdminCookieName = "paylink-admin-token"

// AdminAuthMiddleware gates the administrative surface. It accepts the
// session token either as a bearer header or as the admin cookie.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie(AdminCookieName); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization missing")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil || claims == nil || claims.Role != "admin" {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
