package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
)

type ListActivitiesInput struct {
	UserID    uuid.UUID
	Type      string
	ProjectID *uuid.UUID
	Page      int
	Limit     int
}

// ActivityView is an Activity decorated with its dashboard rendering hints.
type ActivityView struct {
	*model.Activity
	Display model.ActivityDisplay `json:"display"`
}

type ListActivitiesOutput struct {
	Activities []*ActivityView `json:"activities"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

type ActivitySummaryOutput struct {
	Since        time.Time        `json:"since"`
	TotalCount   int64            `json:"totalCount"`
	CountsByType map[string]int64 `json:"countsByType"`
}

type ActivityService interface {
	List(ctx context.Context, in ListActivitiesInput) (*ListActivitiesOutput, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*ActivityView, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) (*ActivitySummaryOutput, error)
}

type activityService struct {
	activities repo.ActivityRepo
}

func NewActivityService(activities repo.ActivityRepo) ActivityService {
	return &activityService{activities: activities}
}

func decorate(items []*model.Activity) []*ActivityView {
	views := make([]*ActivityView, 0, len(items))
	for _, a := range items {
		views = append(views, &ActivityView{
			Activity: a,
			Display:  model.DisplayForActivity(a.Type),
		})
	}
	return views
}

func (s *activityService) List(ctx context.Context, in ListActivitiesInput) (*ListActivitiesOutput, error) {
	page, limit := clampPage(in.Page, in.Limit)

	filter := repo.ActivityFilter{
		UserID:    in.UserID,
		Type:      in.Type,
		ProjectID: in.ProjectID,
	}
	items, total, err := s.activities.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListActivitiesOutput{
		Activities: decorate(items),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *activityService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*ActivityView, error) {
	if limit < 1 || limit > maxPageSize {
		limit = 10
	}
	items, err := s.activities.Recent(ctx, userID, limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return decorate(items), nil
}

func (s *activityService) Summary(ctx context.Context, userID uuid.UUID, days int) (*ActivitySummaryOutput, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	counts, err := s.activities.CountByType(ctx, userID, since)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &ActivitySummaryOutput{
		Since:        since,
		TotalCount:   total,
		CountsByType: counts,
	}, nil
}
