package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ListTemplatesInput struct {
	Search   string
	Category string
	Status   string
	IsPublic *bool
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

type ListTemplatesOutput struct {
	Templates  []*model.Template `json:"templates"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

type CreateTemplateInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	HTMLContent string
	CSSContent  string
	JSContent   string
	Category    string
	Tags        []string
	IsPublic    *bool
	Thumbnail   string
	Version     string
	Status      string
}

type UpdateTemplateInput struct {
	TemplateID uuid.UUID
	UserID     uuid.UUID

	Name        *string
	Description *string
	HTMLContent *string
	CSSContent  *string
	JSContent   *string
	Category    *string
	Tags        []string
	IsPublic    *bool
	Thumbnail   *string
	Version     *string
	Status      *string
}

type TemplateDownloadOutput struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	HTMLContent   string    `json:"htmlContent"`
	CSSContent    string    `json:"cssContent"`
	JSContent     string    `json:"jsContent"`
	DownloadCount int64     `json:"downloadCount"`
}

// TemplateService manages the shared template catalog. Reads are open to
// any authenticated user; writes are restricted to the template's author.
type TemplateService interface {
	List(ctx context.Context, in ListTemplatesInput) (*ListTemplatesOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Template, error)
	Create(ctx context.Context, in CreateTemplateInput) (*model.Template, error)
	Update(ctx context.Context, in UpdateTemplateInput) (*model.Template, error)
	Delete(ctx context.Context, templateID, userID uuid.UUID) error
	Download(ctx context.Context, templateID uuid.UUID) (*TemplateDownloadOutput, error)
	Preview(ctx context.Context, id uuid.UUID) (string, error)
	Categories(ctx context.Context) ([]repo.CategoryCount, error)
}

type templateService struct {
	templates repo.TemplateRepo
	log       *zap.Logger
}

func NewTemplateService(templates repo.TemplateRepo, log *zap.Logger) TemplateService {
	return &templateService{templates: templates, log: log}
}

func (s *templateService) List(ctx context.Context, in ListTemplatesInput) (*ListTemplatesOutput, error) {
	page, limit := clampPage(in.Page, in.Limit)

	filter := repo.TemplateFilter{
		Search:   in.Search,
		Category: in.Category,
		Status:   in.Status,
		IsPublic: in.IsPublic,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
	}

	items, total, err := s.templates.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListTemplatesOutput{
		Templates:  items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	if err := s.templates.IncrementViews(ctx, t.ID); err != nil {
		s.log.Warn("template view count increment failed", zap.String("template_id", t.ID.String()), zap.Error(err))
	} else {
		t.ViewCount++
	}

	return t, nil
}

func (s *templateService) Create(ctx context.Context, in CreateTemplateInput) (*model.Template, error) {
	if in.Name == "" {
		return nil, &ValidationError{Msg: "template name is required"}
	}
	if in.HTMLContent == "" {
		return nil, &ValidationError{Msg: "template html content is required"}
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	version := in.Version
	if version == "" {
		version = "1.0.0"
	}
	status := in.Status
	if status == "" {
		status = model.TemplateStatusDraft
	}
	if !validTemplateStatus(status) {
		return nil, &ValidationError{Msg: "invalid template status: " + status}
	}

	t := &model.Template{
		Name:        in.Name,
		Description: in.Description,
		HTMLContent: in.HTMLContent,
		CSSContent:  in.CSSContent,
		JSContent:   in.JSContent,
		Category:    in.Category,
		Tags:        datatypes.NewJSONSlice(in.Tags),
		IsPublic:    isPublic,
		Thumbnail:   in.Thumbnail,
		Version:     version,
		Status:      status,
		UserID:      &in.UserID,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, wrapStorageErr(err)
	}

	return t, nil
}

func validTemplateStatus(status string) bool {
	switch status {
	case model.TemplateStatusDraft, model.TemplateStatusPublished, model.TemplateStatusArchived:
		return true
	}
	return false
}

// authorOwned loads a template and enforces authorship. Unlike project
// lookups, a foreign template is visible, so the mismatch is a 403 rather
// than a 404.
func (s *templateService) authorOwned(ctx context.Context, templateID, userID uuid.UUID) (*model.Template, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	if t.UserID == nil || *t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *templateService) Update(ctx context.Context, in UpdateTemplateInput) (*model.Template, error) {
	t, err := s.authorOwned(ctx, in.TemplateID, in.UserID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
		t.Name = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
		t.Description = *in.Description
	}
	if in.HTMLContent != nil {
		fields["html_content"] = *in.HTMLContent
		t.HTMLContent = *in.HTMLContent
	}
	if in.CSSContent != nil {
		fields["css_content"] = *in.CSSContent
		t.CSSContent = *in.CSSContent
	}
	if in.JSContent != nil {
		fields["js_content"] = *in.JSContent
		t.JSContent = *in.JSContent
	}
	if in.Category != nil {
		fields["category"] = *in.Category
		t.Category = *in.Category
	}
	if in.Tags != nil {
		tags := datatypes.NewJSONSlice(in.Tags)
		fields["tags"] = tags
		t.Tags = tags
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
		t.IsPublic = *in.IsPublic
	}
	if in.Thumbnail != nil {
		fields["thumbnail"] = *in.Thumbnail
		t.Thumbnail = *in.Thumbnail
	}
	if in.Version != nil {
		fields["version"] = *in.Version
		t.Version = *in.Version
	}
	if in.Status != nil {
		if !validTemplateStatus(*in.Status) {
			return nil, &ValidationError{Msg: "invalid template status: " + *in.Status}
		}
		fields["status"] = *in.Status
		t.Status = *in.Status
	}

	if len(fields) == 0 {
		return t, nil
	}

	if err := s.templates.Patch(ctx, t.ID, fields); err != nil {
		return nil, wrapStorageErr(err)
	}
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, templateID, userID uuid.UUID) error {
	t, err := s.authorOwned(ctx, templateID, userID)
	if err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, t.ID); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *templateService) Download(ctx context.Context, templateID uuid.UUID) (*TemplateDownloadOutput, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	count, err := s.templates.IncrementDownloads(ctx, t.ID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	return &TemplateDownloadOutput{
		ID:            t.ID,
		Name:          t.Name,
		HTMLContent:   t.HTMLContent,
		CSSContent:    t.CSSContent,
		JSContent:     t.JSContent,
		DownloadCount: count,
	}, nil
}

func (s *templateService) Preview(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return "", wrapStorageErr(err)
	}
	return renderTemplatePreview(t), nil
}

func (s *templateService) Categories(ctx context.Context) ([]repo.CategoryCount, error) {
	counts, err := s.templates.CountByCategory(ctx)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return counts, nil
}

// renderTemplatePreview inlines the stored CSS and JS into a standalone
// document so the browser can render it without extra requests.
func renderTemplatePreview(t *model.Template) string {
	doc := "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>" + t.Name + "</title>\n"
	if t.CSSContent != "" {
		doc += "<style>\n" + t.CSSContent + "\n</style>\n"
	}
	doc += "</head>\n<body>\n" + t.HTMLContent + "\n"
	if t.JSContent != "" {
		doc += "<script>\n" + t.JSContent + "\n</script>\n"
	}
	doc += "</body>\n</html>"
	return doc
}
