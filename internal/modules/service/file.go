package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
)

type UpdateFileInput struct {
	FileID uuid.UUID
	UserID uuid.UUID

	Description *string
	IsPublic    *bool
}

// FileService manages upload metadata records. The bytes themselves live
// outside this service; only the bookkeeping rows are handled here.
type FileService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*model.File, error)
	Get(ctx context.Context, fileID, userID uuid.UUID) (*model.File, error)
	Update(ctx context.Context, in UpdateFileInput) (*model.File, error)
	Delete(ctx context.Context, fileID, userID uuid.UUID) error
}

type fileService struct {
	files repo.FileRepo
}

func NewFileService(files repo.FileRepo) FileService {
	return &fileService{files: files}
}

func (s *fileService) List(ctx context.Context, userID uuid.UUID) ([]*model.File, error) {
	files, err := s.files.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return files, nil
}

func (s *fileService) Get(ctx context.Context, fileID, userID uuid.UUID) (*model.File, error) {
	f, err := s.files.GetOwned(ctx, fileID, userID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return f, nil
}

func (s *fileService) Update(ctx context.Context, in UpdateFileInput) (*model.File, error) {
	f, err := s.files.GetOwned(ctx, in.FileID, in.UserID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	fields := map[string]any{}
	if in.Description != nil {
		fields["description"] = *in.Description
		f.Description = *in.Description
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
		f.IsPublic = *in.IsPublic
	}
	if len(fields) == 0 {
		return f, nil
	}

	if err := s.files.Patch(ctx, f.ID, fields); err != nil {
		return nil, wrapStorageErr(err)
	}
	return f, nil
}

func (s *fileService) Delete(ctx context.Context, fileID, userID uuid.UUID) error {
	f, err := s.files.GetOwned(ctx, fileID, userID)
	if err != nil {
		return wrapStorageErr(err)
	}
	if err := s.files.Delete(ctx, f.ID); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}
