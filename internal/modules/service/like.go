package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
)

type LikeToggleOutput struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type LikeStatusOutput struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// LikeService keeps the likes table and the denormalized like_count on
// templates consistent. All writes go through the repo's transactions.
type LikeService interface {
	Toggle(ctx context.Context, userID, templateID uuid.UUID) (*LikeToggleOutput, error)
	Remove(ctx context.Context, userID, templateID uuid.UUID) (*LikeToggleOutput, error)
	Status(ctx context.Context, userID, templateID uuid.UUID) (*LikeStatusOutput, error)
	ListLiked(ctx context.Context, userID uuid.UUID) ([]*model.Template, error)
}

type likeService struct {
	likes     repo.LikeRepo
	templates repo.TemplateRepo
}

func NewLikeService(likes repo.LikeRepo, templates repo.TemplateRepo) LikeService {
	return &likeService{likes: likes, templates: templates}
}

func (s *likeService) Toggle(ctx context.Context, userID, templateID uuid.UUID) (*LikeToggleOutput, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	liked, err := s.likes.Toggle(ctx, userID, t.ID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	count := t.LikeCount
	if liked {
		count++
	} else {
		count--
	}
	if count < 0 {
		count = 0
	}
	return &LikeToggleOutput{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) Remove(ctx context.Context, userID, templateID uuid.UUID) (*LikeToggleOutput, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	// Removing an absent like is not an error; the caller only cares that
	// the end state is "not liked".
	removed, err := s.likes.Remove(ctx, userID, t.ID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	count := t.LikeCount
	if removed {
		count--
	}
	if count < 0 {
		count = 0
	}
	return &LikeToggleOutput{Liked: false, LikeCount: count}, nil
}

func (s *likeService) Status(ctx context.Context, userID, templateID uuid.UUID) (*LikeStatusOutput, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	liked, err := s.likes.Exists(ctx, userID, t.ID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return &LikeStatusOutput{Liked: liked, LikeCount: t.LikeCount}, nil
}

func (s *likeService) ListLiked(ctx context.Context, userID uuid.UUID) ([]*model.Template, error) {
	templates, err := s.likes.ListLikedTemplates(ctx, userID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return templates, nil
}
