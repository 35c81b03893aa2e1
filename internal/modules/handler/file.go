package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type FileHandler struct {
	svc service.FileService
}

func NewFileHandler(s service.FileService) *FileHandler {
	return &FileHandler{svc: s}
}

func (h *FileHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	files, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: files})
}

func (h *FileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	f, err := h.svc.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: f})
}

type UpdateFileReq struct {
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

func (h *FileHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	req := UpdateFileReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	f, err := h.svc.Update(c.Request.Context(), service.UpdateFileInput{
		FileID:      id,
		UserID:      user.ID,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: f})
}

func (h *FileHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, serializer.Response{Msg: "file deleted"})
}
