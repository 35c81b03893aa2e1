package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newProjectService(projects *MockProjectRepo, publications *MockPublicationRepo, activities *MockActivityRepo, logs *MockProjectLogRepo) ProjectService {
	return NewProjectService(projects, publications, activities, logs, zap.NewNop())
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	tests := []struct {
		name    string
		input   CreateProjectInput
		setup   func(*MockProjectRepo, *MockActivityRepo, *MockProjectLogRepo)
		wantErr bool
	}{
		{
			name: "successful create",
			input: CreateProjectInput{
				OwnerID:    ownerID,
				Name:       "landing page",
				TemplateID: "portfolio",
			},
			setup: func(projects *MockProjectRepo, activities *MockActivityRepo, logs *MockProjectLogRepo) {
				projects.On("Create", ctx, mock.AnythingOfType("*model.Project")).Return(nil)
				activities.On("Create", ctx, mock.AnythingOfType("*model.Activity")).Return(nil)
				logs.On("Create", ctx, mock.AnythingOfType("*model.ProjectLog")).Return(nil)
			},
		},
		{
			name:    "missing name",
			input:   CreateProjectInput{OwnerID: ownerID},
			setup:   func(*MockProjectRepo, *MockActivityRepo, *MockProjectLogRepo) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := &MockProjectRepo{}
			publications := &MockPublicationRepo{}
			activities := &MockActivityRepo{}
			logs := &MockProjectLogRepo{}
			tt.setup(projects, activities, logs)

			svc := newProjectService(projects, publications, activities, logs)
			p, err := svc.Create(ctx, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, model.ProjectStatusDraft, p.Status)
			assert.Equal(t, "default", p.Theme())
			projects.AssertExpectations(t)
			activities.AssertExpectations(t)
			logs.AssertExpectations(t)
		})
	}
}

func TestProjectService_Create_AuditFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	projects := &MockProjectRepo{}
	activities := &MockActivityRepo{}
	logs := &MockProjectLogRepo{}
	projects.On("Create", ctx, mock.AnythingOfType("*model.Project")).Return(nil)
	activities.On("Create", ctx, mock.Anything).Return(errors.New("activities table is on fire"))
	logs.On("Create", ctx, mock.Anything).Return(errors.New("logs too"))

	svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
	p, err := svc.Create(ctx, CreateProjectInput{OwnerID: ownerID, Name: "resilient"})

	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProjectService_View(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	t.Run("increments view count", func(t *testing.T) {
		projects := &MockProjectRepo{}
		logs := &MockProjectLogRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).
			Return(&model.Project{ID: projectID, OwnerID: ownerID, Name: "p", ViewCount: 3}, nil)
		projects.On("IncrementViews", ctx, projectID).Return(nil)
		logs.On("Create", ctx, mock.Anything).Return(nil)

		svc := newProjectService(projects, &MockPublicationRepo{}, &MockActivityRepo{}, logs)
		p, err := svc.View(ctx, projectID, ownerID, RequestMeta{})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), p.ViewCount)
	})

	t.Run("foreign project reads as not found", func(t *testing.T) {
		projects := &MockProjectRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).Return(nil, gorm.ErrRecordNotFound)

		svc := newProjectService(projects, &MockPublicationRepo{}, &MockActivityRepo{}, &MockProjectLogRepo{})
		_, err := svc.View(ctx, projectID, ownerID, RequestMeta{})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	t.Run("settings merge preserves untouched keys", func(t *testing.T) {
		projects := &MockProjectRepo{}
		activities := &MockActivityRepo{}
		logs := &MockProjectLogRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).Return(&model.Project{
			ID:      projectID,
			OwnerID: ownerID,
			Name:    "p",
			Settings: datatypes.JSONMap{
				"theme":    "dark",
				"layout":   "standard",
				"htmlCode": "<h1>hi</h1>",
			},
		}, nil)
		projects.On("Patch", ctx, projectID, mock.MatchedBy(func(fields map[string]any) bool {
			settings, ok := fields["settings"].(datatypes.JSONMap)
			return ok && settings["theme"] == "light" && settings["htmlCode"] == "<h1>hi</h1>"
		}), true).Return(nil)
		activities.On("Create", ctx, mock.Anything).Return(nil)
		logs.On("Create", ctx, mock.Anything).Return(nil)

		svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
		p, err := svc.Update(ctx, UpdateProjectInput{
			ProjectID: projectID,
			OwnerID:   ownerID,
			Settings:  map[string]any{"theme": "light"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "light", p.Theme())
		assert.Equal(t, "<h1>hi</h1>", p.HTMLCode())
		projects.AssertExpectations(t)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		projects := &MockProjectRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).
			Return(&model.Project{ID: projectID, OwnerID: ownerID}, nil)

		svc := newProjectService(projects, &MockPublicationRepo{}, &MockActivityRepo{}, &MockProjectLogRepo{})
		bad := "live"
		_, err := svc.Update(ctx, UpdateProjectInput{ProjectID: projectID, OwnerID: ownerID, Status: &bad})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestProjectService_Duplicate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	activities := &MockActivityRepo{}
	logs := &MockProjectLogRepo{}
	projects.On("GetOwned", ctx, projectID, ownerID).Return(&model.Project{
		ID:       projectID,
		OwnerID:  ownerID,
		Name:     "my site",
		Status:   model.ProjectStatusPublished,
		IsPublic: true,
		Settings: datatypes.JSONMap{"theme": "dark"},
	}, nil)
	projects.On("Create", ctx, mock.MatchedBy(func(p *model.Project) bool {
		return p.Name == "my site (복제)" &&
			p.Status == model.ProjectStatusDraft &&
			!p.IsPublic
	})).Return(nil)
	activities.On("Create", ctx, mock.Anything).Return(nil)
	logs.On("Create", ctx, mock.Anything).Return(nil)

	svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
	copy, err := svc.Duplicate(ctx, projectID, ownerID, RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, "dark", copy.Theme())
	projects.AssertExpectations(t)
}

func TestProjectService_Publish(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	activities := &MockActivityRepo{}
	logs := &MockProjectLogRepo{}

	draft := &model.Project{ID: projectID, OwnerID: ownerID, Name: "site", Status: model.ProjectStatusDraft}
	published := &model.Project{ID: projectID, OwnerID: ownerID, Name: "site", Status: model.ProjectStatusPublished, PublicationCount: 1}
	pub := &model.Publication{ID: uuid.New(), ProjectID: projectID, Version: 1}

	projects.On("GetOwned", ctx, projectID, ownerID).Return(draft, nil).Once()
	projects.On("Publish", ctx, draft, mock.AnythingOfType("time.Time")).Return(pub, nil)
	projects.On("GetOwned", ctx, projectID, ownerID).Return(published, nil).Once()
	activities.On("Create", ctx, mock.Anything).Return(nil)
	logs.On("Create", ctx, mock.Anything).Return(nil)

	svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
	out, err := svc.Publish(ctx, projectID, ownerID, RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, model.ProjectStatusPublished, out.Project.Status)
	assert.Equal(t, 1, out.Publication.Version)
	projects.AssertExpectations(t)
}

func TestProjectService_Unpublish(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	t.Run("published project unpublishes", func(t *testing.T) {
		projects := &MockProjectRepo{}
		activities := &MockActivityRepo{}
		logs := &MockProjectLogRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).
			Return(&model.Project{ID: projectID, OwnerID: ownerID, Name: "site", Status: model.ProjectStatusPublished}, nil)
		projects.On("Unpublish", ctx, projectID).Return(nil)
		activities.On("Create", ctx, mock.Anything).Return(nil)
		logs.On("Create", ctx, mock.Anything).Return(nil)

		svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
		assert.NoError(t, svc.Unpublish(ctx, projectID, ownerID, RequestMeta{}))
		projects.AssertExpectations(t)
	})

	t.Run("second unpublish conflicts", func(t *testing.T) {
		projects := &MockProjectRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).
			Return(&model.Project{ID: projectID, OwnerID: ownerID, Status: model.ProjectStatusDraft}, nil)

		svc := newProjectService(projects, &MockPublicationRepo{}, &MockActivityRepo{}, &MockProjectLogRepo{})
		err := svc.Unpublish(ctx, projectID, ownerID, RequestMeta{})

		var cErr *ConflictError
		assert.ErrorAs(t, err, &cErr)
		projects.AssertNotCalled(t, "Unpublish", mock.Anything, mock.Anything)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	t.Run("blocked while published snapshot exists", func(t *testing.T) {
		projects := &MockProjectRepo{}
		publications := &MockPublicationRepo{}
		projects.On("GetOwned", ctx, projectID, ownerID).
			Return(&model.Project{ID: projectID, OwnerID: ownerID, Status: model.ProjectStatusPublished}, nil)
		publications.On("CountByProject", ctx, projectID).Return(int64(1), nil)

		svc := newProjectService(projects, publications, &MockActivityRepo{}, &MockProjectLogRepo{})
		err := svc.Delete(ctx, projectID, ownerID, RequestMeta{})

		var cErr *ConflictError
		assert.ErrorAs(t, err, &cErr)
		assert.True(t, cErr.HasPublications)
		assert.Equal(t, int64(1), cErr.PublicationCount)
		projects.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
	})

	t.Run("unpublished project deletes", func(t *testing.T) {
		projects := &MockProjectRepo{}
		publications := &MockPublicationRepo{}
		logs := &MockProjectLogRepo{}
		p := &model.Project{ID: projectID, OwnerID: ownerID, Name: "old site", Status: model.ProjectStatusDraft}
		projects.On("GetOwned", ctx, projectID, ownerID).Return(p, nil)
		publications.On("CountByProject", ctx, projectID).Return(int64(0), nil)
		projects.On("DeleteCascade", ctx, p).Return(nil)
		logs.On("Create", ctx, mock.MatchedBy(func(l *model.ProjectLog) bool {
			// The surviving log row must not reference the purged project.
			return l.Action == model.LogActionDeleted && l.ProjectID == nil
		})).Return(nil)

		svc := newProjectService(projects, publications, &MockActivityRepo{}, logs)
		assert.NoError(t, svc.Delete(ctx, projectID, ownerID, RequestMeta{}))
		projects.AssertExpectations(t)
		logs.AssertExpectations(t)
	})
}

func TestProjectService_UpdateCode(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	activities := &MockActivityRepo{}
	logs := &MockProjectLogRepo{}
	projects.On("GetOwned", ctx, projectID, ownerID).Return(&model.Project{
		ID:       projectID,
		OwnerID:  ownerID,
		Name:     "p",
		Settings: datatypes.JSONMap{"theme": "dark", "htmlCode": "<old/>"},
	}, nil)
	projects.On("Patch", ctx, projectID, mock.MatchedBy(func(fields map[string]any) bool {
		settings, ok := fields["settings"].(datatypes.JSONMap)
		return ok && settings["htmlCode"] == "<new/>" && settings["theme"] == "dark"
	}), true).Return(nil)
	activities.On("Create", ctx, mock.MatchedBy(func(a *model.Activity) bool {
		return a.Type == model.ActivityCodeUpdated
	})).Return(nil)
	logs.On("Create", ctx, mock.Anything).Return(nil)

	svc := newProjectService(projects, &MockPublicationRepo{}, activities, logs)
	assert.NoError(t, svc.UpdateCode(ctx, projectID, ownerID, "<new/>", RequestMeta{IP: "10.0.0.1"}))
	projects.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestProjectService_Stats(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()
	published := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	projects := &MockProjectRepo{}
	projects.On("GetOwned", ctx, projectID, ownerID).Return(&model.Project{
		ID:               projectID,
		OwnerID:          ownerID,
		Name:             "site",
		ViewCount:        12,
		EditCount:        7,
		PublicationCount: 1,
		LastPublishedAt:  &published,
	}, nil)

	svc := newProjectService(projects, &MockPublicationRepo{}, &MockActivityRepo{}, &MockProjectLogRepo{})
	out, err := svc.Stats(ctx, projectID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), out.Views)
	assert.Equal(t, int64(7), out.Edits)
	assert.Equal(t, 1, out.PublicationCount)
	assert.Equal(t, &published, out.LastPublished)
}
