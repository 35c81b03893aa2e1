package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"gorm.io/gorm"
)

type TemplateFilter struct {
	Search   string
	Category string
	Status   string
	IsPublic *bool
	// SortBy must be validated by the caller against sortable columns.
	SortBy   string
	SortDesc bool
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type TemplateRepo interface {
	Create(ctx context.Context, t *model.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	List(ctx context.Context, f TemplateFilter, limit, offset int) ([]*model.Template, int64, error)
	Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// IncrementDownloads bumps download_count and returns the new value.
	IncrementDownloads(ctx context.Context, id uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

type templateRepo struct{ db *gorm.DB }

func NewTemplateRepo(db *gorm.DB) TemplateRepo {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, t *model.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *templateRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var t model.Template
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) List(ctx context.Context, f TemplateFilter, limit, offset int) ([]*model.Template, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Template{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.IsPublic != nil {
		q = q.Where("is_public = ?", *f.IsPublic)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := f.SortBy
	if order == "" {
		order = "created_at"
	}
	if f.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var templates []*model.Template
	err := q.Order(order).
		Limit(limit).
		Offset(offset).
		Find(&templates).Error
	return templates, total, err
}

func (r *templateRepo) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.Template{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *templateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Template{}, "id = ?", id).Error
}

func (r *templateRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Template{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *templateRepo) IncrementDownloads(ctx context.Context, id uuid.UUID) (int64, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Template{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
	if err != nil {
		return 0, err
	}

	var t model.Template
	if err := r.db.WithContext(ctx).Select("download_count").First(&t, "id = ?", id).Error; err != nil {
		return 0, err
	}
	return t.DownloadCount, nil
}

func (r *templateRepo) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&model.Template{}).
		Select("COALESCE(NULLIF(category, ''), 'uncategorized') AS category, COUNT(id) AS count").
		Group("1").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
