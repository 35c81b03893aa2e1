package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type PlaygroundHandler struct {
	svc service.PlaygroundService
}

func NewPlaygroundHandler(s service.PlaygroundService) *PlaygroundHandler {
	return &PlaygroundHandler{svc: s}
}

// Render serves the scratch page as HTML for direct browser access.
func (h *PlaygroundHandler) Render(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context())
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out.HTMLCode))
}

func (h *PlaygroundHandler) Get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context())
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdatePlaygroundReq struct {
	HTMLCode string `json:"htmlCode" binding:"required"`
}

func (h *PlaygroundHandler) Update(c *gin.Context) {
	req := UpdatePlaygroundReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Update(c.Request.Context(), req.HTMLCode)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlaygroundHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		serializer.SvcErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "playground reset"})
}
