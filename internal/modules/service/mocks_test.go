package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepo is a mock implementation of repo.ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Patch(ctx context.Context, id uuid.UUID, fields map[string]any, bumpEdits bool) error {
	args := m.Called(ctx, id, fields, bumpEdits)
	return args.Error(0)
}

func (m *MockProjectRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepo) Publish(ctx context.Context, p *model.Project, now time.Time) (*model.Publication, error) {
	args := m.Called(ctx, p, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockProjectRepo) Unpublish(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectRepo) DeleteCascade(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockPublicationRepo is a mock implementation of repo.PublicationRepo
type MockPublicationRepo struct {
	mock.Mock
}

func (m *MockPublicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepo) GetByProject(ctx context.Context, projectID uuid.UUID) (*model.Publication, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPublicationRepo) List(ctx context.Context, search string, limit, offset int) ([]*model.Publication, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Publication), args.Get(1).(int64), args.Error(2)
}

func (m *MockPublicationRepo) IncrementViews(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

// MockActivityRepo is a mock implementation of repo.ActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityRepo) List(ctx context.Context, f repo.ActivityFilter, limit, offset int) ([]*model.Activity, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Activity), args.Get(1).(int64), args.Error(2)
}

func (m *MockActivityRepo) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Activity), args.Error(1)
}

func (m *MockActivityRepo) CountByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int64, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockProjectLogRepo is a mock implementation of repo.ProjectLogRepo
type MockProjectLogRepo struct {
	mock.Mock
}

func (m *MockProjectLogRepo) Create(ctx context.Context, l *model.ProjectLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockProjectLogRepo) List(ctx context.Context, f repo.ProjectLogFilter, limit, offset int) ([]*model.ProjectLog, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.ProjectLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectLogRepo) Count(ctx context.Context, action string) (int64, error) {
	args := m.Called(ctx, action)
	return args.Get(0).(int64), args.Error(1)
}

// MockTemplateRepo is a mock implementation of repo.TemplateRepo
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, t *model.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepo) List(ctx context.Context, f repo.TemplateFilter, limit, offset int) ([]*model.Template, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Template), args.Get(1).(int64), args.Error(2)
}

func (m *MockTemplateRepo) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepo) IncrementDownloads(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTemplateRepo) CountByCategory(ctx context.Context) ([]repo.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CategoryCount), args.Error(1)
}

// MockLikeRepo is a mock implementation of repo.LikeRepo
type MockLikeRepo struct {
	mock.Mock
}

func (m *MockLikeRepo) Toggle(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, templateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepo) Remove(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, templateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepo) Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, templateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepo) ListLikedTemplates(ctx context.Context, userID uuid.UUID) ([]*model.Template, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Template), args.Error(1)
}

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetActiveByAPIKeyHMAC(ctx context.Context, hmac string) (*model.User, error) {
	args := m.Called(ctx, hmac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
