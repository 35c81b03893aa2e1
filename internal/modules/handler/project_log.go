package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

type ProjectLogHandler struct {
	svc service.ProjectLogService
}

func NewProjectLogHandler(s service.ProjectLogService) *ProjectLogHandler {
	return &ProjectLogHandler{svc: s}
}

type ListProjectLogsReq struct {
	Action    string `form:"action"`
	ProjectID string `form:"projectId" binding:"omitempty,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	// Accept a bare date or a full timestamp.
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *ProjectLogHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req := ListProjectLogsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.ListProjectLogsInput{
		UserID: user.ID,
		Action: req.Action,
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

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid startDate", err))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid endDate", err))
		return
	}
	in.StartDate = start
	in.EndDate = end

	out, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type ProjectLogCountReq struct {
	Action string `form:"action"`
}

// Count is unauthenticated; it exposes only an aggregate number.
func (h *ProjectLogHandler) Count(c *gin.Context) {
	req := ProjectLogCountReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	count, err := h.svc.Count(c.Request.Context(), req.Action)
	if err != nil {
		serializer.SvcErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"count": count}})
}
