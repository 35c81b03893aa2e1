package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type TemplateHandler struct {
	svc   service.TemplateService
	likes service.LikeService
}

func NewTemplateHandler(s service.TemplateService, likes service.LikeService) *TemplateHandler {
	return &TemplateHandler{svc: s, likes: likes}
}

type ListTemplatesReq struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published archived"`
	IsPublic *bool  `form:"isPublic"`
	SortBy   string `form:"sortBy,default=created_at" binding:"omitempty,oneof=created_at name view_count download_count like_count"`
	Order    string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

func (h *TemplateHandler) List(c *gin.Context) {
	req := ListTemplatesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListTemplatesInput{
		Search:   req.Search,
		Category: req.Category,
		Status:   req.Status,
		IsPublic: req.IsPublic,
		SortBy:   req.SortBy,
		SortDesc: req.Order != "asc",
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: t})
}

type CreateTemplateReq struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	HTMLContent string   `json:"htmlContent" binding:"required"`
	CSSContent  string   `json:"cssContent"`
	JSContent   string   `json:"jsContent"`
	Category    string   `json:"category" binding:"max=100"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
	Thumbnail   string   `json:"thumbnail" binding:"max=500"`
	Version     string   `json:"version" binding:"omitempty,max=20"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft published archived"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := CreateTemplateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.Create(c.Request.Context(), service.CreateTemplateInput{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		HTMLContent: req.HTMLContent,
		CSSContent:  req.CSSContent,
		JSContent:   req.JSContent,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		Thumbnail:   req.Thumbnail,
		Version:     req.Version,
		Status:      req.Status,
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: t})
}

type UpdateTemplateReq struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	HTMLContent *string  `json:"htmlContent"`
	CSSContent  *string  `json:"cssContent"`
	JSContent   *string  `json:"jsContent"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
	Thumbnail   *string  `json:"thumbnail" binding:"omitempty,max=500"`
	Version     *string  `json:"version" binding:"omitempty,max=20"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

func (h *TemplateHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	req := UpdateTemplateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.Update(c.Request.Context(), service.UpdateTemplateInput{
		TemplateID:  id,
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		HTMLContent: req.HTMLContent,
		CSSContent:  req.CSSContent,
		JSContent:   req.JSContent,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		Thumbnail:   req.Thumbnail,
		Version:     req.Version,
		Status:      req.Status,
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: t})
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, user.ID); err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "template deleted"})
}

func (h *TemplateHandler) Download(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.svc.Download(c.Request.Context(), id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Preview returns a rendered HTML document rather than the JSON envelope.
func (h *TemplateHandler) Preview(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Preview(c.Request.Context(), id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func (h *TemplateHandler) Categories(c *gin.Context) {
	counts, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: counts})
}

// Like toggles the caller's like on a template. Kept under /templates for
// frontend compatibility; it is the same operation as the likes toggle.
func (h *TemplateHandler) Like(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.likes.Toggle(c.Request.Context(), user.ID, id)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
