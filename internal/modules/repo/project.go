package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	// GetOwned scopes every lookup by (id, owner_id) so absence and lack of
	// permission are the same gorm.ErrRecordNotFound.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error)
	// Patch applies partial field updates; bumpEdits adds an atomic
	// edit_count increment in the same UPDATE.
	Patch(ctx context.Context, id uuid.UUID, fields map[string]any, bumpEdits bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// Publish atomically upserts the project's single publication row and
	// flips the project to published. A concurrent reader never sees one
	// without the other.
	Publish(ctx context.Context, p *model.Project, now time.Time) (*model.Publication, error)
	// Unpublish atomically returns the project to draft and hard-deletes
	// its publication row.
	Unpublish(ctx context.Context, projectID uuid.UUID) error
	// DeleteCascade purges the project's activities and logs, the owner's
	// file rows, and finally the project itself, all in one transaction.
	DeleteCascade(ctx context.Context, p *model.Project) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Patch(ctx context.Context, id uuid.UUID, fields map[string]any, bumpEdits bool) error {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	if bumpEdits {
		updates["edit_count"] = gorm.Expr("edit_count + 1")
	}
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *projectRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *projectRepo) Publish(ctx context.Context, p *model.Project, now time.Time) (*model.Publication, error) {
	content := model.PublicationContent{
		HTMLCode:   p.HTMLCode(),
		Settings:   p.Settings,
		TemplateID: p.TemplateID,
	}
	metadata := model.PublicationMetadata{
		ProjectStatus: p.Status,
		IsPublic:      p.IsPublic,
		Theme:         p.Theme(),
		Layout:        p.Layout(),
	}

	var pub model.Publication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("project_id = ?", p.ID).First(&pub).Error
		switch {
		case err == nil:
			// Update in place. Version is left untouched: the snapshot is
			// overwritten, not appended.
			pub.Title = p.Name
			pub.Description = p.Description
			pub.Content = content
			pub.Metadata = metadata
			pub.PublishedAt = now
			if err := tx.Save(&pub).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			pub = model.Publication{
				ProjectID:   p.ID,
				UserID:      p.OwnerID,
				Version:     1,
				Title:       p.Name,
				Description: p.Description,
				Content:     content,
				Metadata:    metadata,
				PublishedAt: now,
			}
			if err := tx.Create(&pub).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&model.Project{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"status":            model.ProjectStatusPublished,
				"last_published_at": now,
				"publication_count": 1,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *projectRepo) Unpublish(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).
			Where("id = ?", projectID).
			Update("status", model.ProjectStatusDraft).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).
			Delete(&model.Publication{}).Error
	})
}

func (r *projectRepo) DeleteCascade(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", p.ID).
			Delete(&model.Activity{}).Error; err != nil {
			return err
		}
		// The project's audit trail goes with it.
		if err := tx.Where("project_id = ?", p.ID).
			Delete(&model.ProjectLog{}).Error; err != nil {
			return err
		}
		// Files carry no project reference, so "associated files" means all
		// of the owner's files.
		if err := tx.Where("user_id = ?", p.OwnerID).
			Delete(&model.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", p.ID).Error
	})
}
