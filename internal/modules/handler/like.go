package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type LikeHandler struct {
	svc service.LikeService
}

func NewLikeHandler(s service.LikeService) *LikeHandler {
	return &LikeHandler{svc: s}
}

func (h *LikeHandler) Toggle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	templateID, ok := uuidParam(c, "templateId")
	if !ok {
		return
	}

	out, err := h.svc.Toggle(c.Request.Context(), user.ID, templateID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *LikeHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	templateID, ok := uuidParam(c, "templateId")
	if !ok {
		return
	}

	out, err := h.svc.Remove(c.Request.Context(), user.ID, templateID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *LikeHandler) Status(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	templateID, ok := uuidParam(c, "templateId")
	if !ok {
		return
	}

	out, err := h.svc.Status(c.Request.Context(), user.ID, templateID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *LikeHandler) ListLiked(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	templates, err := h.svc.ListLiked(c.Request.Context(), user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: templates})
}
