package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type PublicationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Publication, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) (*model.Publication, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	List(ctx context.Context, search string, limit, offset int) ([]*model.Publication, int64, error)
	// IncrementViews bumps view_count atomically and returns the fresh row.
	IncrementViews(ctx context.Context, id uuid.UUID) (*model.Publication, error)
}

type publicationRepo struct{ db *gorm.DB }

func NewPublicationRepo(db *gorm.DB) PublicationRepo {
	return &publicationRepo{db: db}
}

func (r *publicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	var pub model.Publication
	if err := r.db.WithContext(ctx).First(&pub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *publicationRepo) GetByProject(ctx context.Context, projectID uuid.UUID) (*model.Publication, error) {
	var pub model.Publication
	if err := r.db.WithContext(ctx).First(&pub, "project_id = ?", projectID).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *publicationRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Publication{}).
		Where("project_id = ?", projectID).
		Count(&n).Error
	return n, err
}

func (r *publicationRepo) List(ctx context.Context, search string, limit, offset int) ([]*model.Publication, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Publication{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pubs []*model.Publication
	err := q.Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pubs).Error
	return pubs, total, err
}

func (r *publicationRepo) IncrementViews(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Publication{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
