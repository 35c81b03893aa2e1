package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type FileRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.File, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.File, error)
	Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type fileRepo struct{ db *gorm.DB }

func NewFileRepo(db *gorm.DB) FileRepo {
	return &fileRepo{db: db}
}

func (r *fileRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.File, error) {
	var files []*model.File
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *fileRepo) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *fileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id).Error
}

func (r *fileRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.File{}).Error
}
