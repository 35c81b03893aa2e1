package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

// ActivityFilter narrows the timeline listing. Zero values mean "no filter".
type ActivityFilter struct {
	UserID    uuid.UUID
	Type      string
	ProjectID *uuid.UUID
}

type ActivityRepo interface {
	Create(ctx context.Context, a *model.Activity) error
	List(ctx context.Context, f ActivityFilter, limit, offset int) ([]*model.Activity, int64, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Activity, error)
	// CountByType aggregates the user's activity since a cutoff, keyed by
	// activity type.
	CountByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int64, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepo) List(ctx context.Context, f ActivityFilter, limit, offset int) ([]*model.Activity, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Activity{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []*model.Activity
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	return activities, total, err
}

func (r *activityRepo) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) CountByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Select("type, COUNT(id) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}
