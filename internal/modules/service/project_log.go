package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
)

type ListProjectLogsInput struct {
	UserID    uuid.UUID
	Action    string
	ProjectID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type ListProjectLogsOutput struct {
	Logs       []*model.ProjectLog `json:"logs"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
}

// ProjectLogService is the read surface over the audit trail. Writes happen
// inside the project service only.
type ProjectLogService interface {
	List(ctx context.Context, in ListProjectLogsInput) (*ListProjectLogsOutput, error)
	Count(ctx context.Context, action string) (int64, error)
}

type projectLogService struct {
	logs repo.ProjectLogRepo
}

func NewProjectLogService(logs repo.ProjectLogRepo) ProjectLogService {
	return &projectLogService{logs: logs}
}

func (s *projectLogService) List(ctx context.Context, in ListProjectLogsInput) (*ListProjectLogsOutput, error) {
	page, limit := clampPage(in.Page, in.Limit)

	filter := repo.ProjectLogFilter{
		UserID:    &in.UserID,
		Action:    in.Action,
		ProjectID: in.ProjectID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	items, total, err := s.logs.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListProjectLogsOutput{
		Logs:       items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *projectLogService) Count(ctx context.Context, action string) (int64, error) {
	count, err := s.logs.Count(ctx, action)
	if err != nil {
		return 0, wrapStorageErr(err)
	}
	return count, nil
}
