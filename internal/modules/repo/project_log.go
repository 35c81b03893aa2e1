package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectLogFilter struct {
	Action    string
	ProjectID *uuid.UUID
	UserID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type ProjectLogRepo interface {
	Create(ctx context.Context, l *model.ProjectLog) error
	List(ctx context.Context, f ProjectLogFilter, limit, offset int) ([]*model.ProjectLog, int64, error)
	Count(ctx context.Context, action string) (int64, error)
}

type projectLogRepo struct{ db *gorm.DB }

func NewProjectLogRepo(db *gorm.DB) ProjectLogRepo {
	return &projectLogRepo{db: db}
}

func (r *projectLogRepo) Create(ctx context.Context, l *model.ProjectLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *projectLogRepo) List(ctx context.Context, f ProjectLogFilter, limit, offset int) ([]*model.ProjectLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ProjectLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*model.ProjectLog
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *projectLogRepo) Count(ctx context.Context, action string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ProjectLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
