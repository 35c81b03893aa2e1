package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

// currentUser pulls the authenticated user the auth middleware stored on
// the context. Routes reaching a handler without it are a wiring bug.
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := c.MustGet("user").(*model.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return nil, false
	}
	return user, true
}

// uuidParam parses a path parameter as a UUID, writing a 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
