package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

// PublicationHandler serves the public, unauthenticated read surface.
type PublicationHandler struct {
	svc service.PublicationService
}

func NewPublicationHandler(s service.PublicationService) *PublicationHandler {
	return &PublicationHandler{svc: s}
}

type ListPublicationsReq struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

func (h *PublicationHandler) List(c *gin.Context) {
	req := ListPublicationsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListPublicationsInput{
		Search: req.Search,
		Page:   req.Page,
		Limit:  req.Limit,
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PublicationHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	pub, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: pub})
}

func (h *PublicationHandler) GetCode(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.svc.GetCode(c.Request.Context(), id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Versions takes a project id in the :id segment, not a publication id.
// The path is kept for frontend compatibility.
func (h *PublicationHandler) Versions(c *gin.Context) {
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	versions, err := h.svc.Versions(c.Request.Context(), projectID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: versions})
}
