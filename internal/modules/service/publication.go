package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListPublicationsInput struct {
	Search string
	Page   int
	Limit  int
}

type ListPublicationsOutput struct {
	Publications []*model.Publication `json:"publications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
}

type PublicationCodeOutput struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	HTMLCode    string         `json:"htmlCode"`
	Settings    map[string]any `json:"settings"`
	PublishedAt time.Time      `json:"publishedAt"`
	ViewCount   int64          `json:"viewCount"`
}

// PublicationService is the unauthenticated read surface over published
// snapshots. Reads here never touch the owning project.
type PublicationService interface {
	List(ctx context.Context, in ListPublicationsInput) (*ListPublicationsOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Publication, error)
	GetCode(ctx context.Context, id uuid.UUID) (*PublicationCodeOutput, error)
	Versions(ctx context.Context, projectID uuid.UUID) ([]*model.Publication, error)
}

type publicationService struct {
	publications repo.PublicationRepo
}

func NewPublicationService(publications repo.PublicationRepo) PublicationService {
	return &publicationService{publications: publications}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (s *publicationService) List(ctx context.Context, in ListPublicationsInput) (*ListPublicationsOutput, error) {
	page, limit := clampPage(in.Page, in.Limit)

	items, total, err := s.publications.List(ctx, in.Search, limit, (page-1)*limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListPublicationsOutput{
		Publications: items,
		Total:        total,
		Page:         page,
		TotalPages:   totalPages,
	}, nil
}

func (s *publicationService) Get(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	pub, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return pub, nil
}

func (s *publicationService) GetCode(ctx context.Context, id uuid.UUID) (*PublicationCodeOutput, error) {
	pub, err := s.publications.IncrementViews(ctx, id)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return &PublicationCodeOutput{
		ID:          pub.ID,
		Title:       pub.Title,
		HTMLCode:    pub.Content.HTMLCode,
		Settings:    pub.Content.Settings,
		PublishedAt: pub.PublishedAt,
		ViewCount:   pub.ViewCount,
	}, nil
}

// Versions lists the publication history of a project, newest first. A
// project keeps a single live snapshot so the list has at most one entry;
// a never-published project is a 404, matching the per-publication reads.
func (s *publicationService) Versions(ctx context.Context, projectID uuid.UUID) ([]*model.Publication, error) {
	pub, err := s.publications.GetByProject(ctx, projectID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return []*model.Publication{pub}, nil
}
