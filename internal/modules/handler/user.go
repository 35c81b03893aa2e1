package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the authenticated user resolved by the auth middleware.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: user})
}
