package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: s}
}

type ListActivitiesReq struct {
	Type      string `form:"type"`
	ProjectID string `form:"projectId" binding:"omitempty,uuid"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

func (h *ActivityHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := ListActivitiesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.ListActivitiesInput{
		UserID: user.ID,
		Type:   req.Type,
		Page:   req.Page,
		Limit:  req.Limit,
	}
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid projectId", err))
			return
		}
		in.ProjectID = &projectID
	}

	out, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type RecentActivitiesReq struct {
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := RecentActivitiesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	activities, err := h.svc.Recent(c.Request.Context(), user.ID, req.Limit)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: activities})
}

type ActivitySummaryReq struct {
	Days int `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

func (h *ActivityHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := ActivitySummaryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Summary(c.Request.Context(), user.ID, req.Days)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
