package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

// UserAuth returns a middleware that authenticates requests using user API
// keys. It validates the bearer token, resolves it to an active user, and
// sets the user in the context.
func UserAuth(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		user, err := users.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
