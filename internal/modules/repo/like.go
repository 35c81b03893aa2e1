package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type LikeRepo interface {
	// Toggle flips the user's like for a template: delete + decrement if a
	// row exists, insert + increment otherwise. The row mutation and the
	// counter arithmetic commit together, which is what keeps
	// templates.like_count equal to the count of like rows.
	Toggle(ctx context.Context, userID, templateID uuid.UUID) (liked bool, err error)
	// Remove deletes the like if present; reports whether a row was removed.
	Remove(ctx context.Context, userID, templateID uuid.UUID) (removed bool, err error)
	Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error)
	ListLikedTemplates(ctx context.Context, userID uuid.UUID) ([]*model.Template, error)
}

type likeRepo struct{ db *gorm.DB }

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &likeRepo{db: db}
}

func (r *likeRepo) Toggle(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Where("user_id = ? AND template_id = ?", userID, templateID).
			First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&model.Template{}).
				Where("id = ?", templateID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.Like{UserID: userID, TemplateID: templateID}).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&model.Template{}).
				Where("id = ?", templateID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error

		default:
			return err
		}
	})
	return liked, err
}

func (r *likeRepo) Remove(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND template_id = ?", userID, templateID).
			Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Template{}).
			Where("id = ?", templateID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	return removed, err
}

func (r *likeRepo) Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Count(&n).Error
	return n > 0, err
}

func (r *likeRepo) ListLikedTemplates(ctx context.Context, userID uuid.UUID) ([]*model.Template, error) {
	var templates []*model.Template
	err := r.db.WithContext(ctx).
		Model(&model.Template{}).
		Joins("JOIN likes ON likes.template_id = templates.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&templates).Error
	return templates, err
}
