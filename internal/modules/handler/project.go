package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	TemplateID  string `json:"templateId" binding:"max=100"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		TemplateID:  req.TemplateID,
		Meta:        requestMeta(c),
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := h.svc.View(c.Request.Context(), id, user.ID, requestMeta(c))
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Name        *string        `json:"name" binding:"omitempty,max=255"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	IsPublic    *bool          `json:"isPublic"`
	Settings    map[string]any `json:"settings"`
	HTMLCode    *string        `json:"htmlCode"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), service.UpdateProjectInput{
		ProjectID:   id,
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		IsPublic:    req.IsPublic,
		Settings:    req.Settings,
		HTMLCode:    req.HTMLCode,
		Meta:        requestMeta(c),
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, user.ID, requestMeta(c)); err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "project deleted"})
}

func (h *ProjectHandler) Duplicate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	copy, err := h.svc.Duplicate(c.Request.Context(), id, user.ID, requestMeta(c))
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: copy})
}

func (h *ProjectHandler) Publish(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.svc.Publish(c.Request.Context(), id, user.ID, requestMeta(c))
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *ProjectHandler) Unpublish(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Unpublish(c.Request.Context(), id, user.ID, requestMeta(c)); err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "project unpublished"})
}

func (h *ProjectHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), id, user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

func (h *ProjectHandler) GetCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	code, err := h.svc.GetCode(c.Request.Context(), id, user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"htmlCode": code}})
}

type UpdateCodeReq struct {
	HTMLCode *string `json:"htmlCode" binding:"required"`
}

func (h *ProjectHandler) UpdateCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	req := UpdateCodeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.UpdateCode(c.Request.Context(), id, user.ID, *req.HTMLCode, requestMeta(c)); err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "code updated"})
}
