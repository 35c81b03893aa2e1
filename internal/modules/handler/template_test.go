package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTemplateService is a mock implementation of service.TemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) List(ctx context.Context, in service.ListTemplatesInput) (*service.ListTemplatesOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListTemplatesOutput), args.Error(1)
}

func (m *MockTemplateService) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Create(ctx context.Context, in service.CreateTemplateInput) (*model.Template, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, in service.UpdateTemplateInput) (*model.Template, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, templateID, userID uuid.UUID) error {
	args := m.Called(ctx, templateID, userID)
	return args.Error(0)
}

func (m *MockTemplateService) Download(ctx context.Context, templateID uuid.UUID) (*service.TemplateDownloadOutput, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TemplateDownloadOutput), args.Error(1)
}

func (m *MockTemplateService) Preview(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockTemplateService) Categories(ctx context.Context) ([]repo.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CategoryCount), args.Error(1)
}

// MockLikeService is a mock implementation of service.LikeService
type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Toggle(ctx context.Context, userID, templateID uuid.UUID) (*service.LikeToggleOutput, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeToggleOutput), args.Error(1)
}

func (m *MockLikeService) Remove(ctx context.Context, userID, templateID uuid.UUID) (*service.LikeToggleOutput, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeToggleOutput), args.Error(1)
}

func (m *MockLikeService) Status(ctx context.Context, userID, templateID uuid.UUID) (*service.LikeStatusOutput, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeStatusOutput), args.Error(1)
}

func (m *MockLikeService) ListLiked(ctx context.Context, userID uuid.UUID) ([]*model.Template, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Template), args.Error(1)
}

func setupTemplateRouter(h *TemplateHandler, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	templates := r.Group("/api/templates")
	{
		templates.GET("", h.List)
		templates.POST("", h.Create)
		templates.GET("/:id", h.Get)
		templates.PUT("/:id", h.Update)
		templates.GET("/:id/preview", h.Preview)
		templates.POST("/:id/like", h.Like)
	}
	return r
}

func TestTemplateHandler_Update_Forbidden(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	templateID := uuid.New()

	svc := &MockTemplateService{}
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, service.ErrForbidden)

	r := setupTemplateRouter(NewTemplateHandler(svc, &MockLikeService{}), user)
	req := httptest.NewRequest("PUT", "/api/templates/"+templateID.String(),
		bytes.NewBufferString(`{"name":"renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTemplateHandler_Like_Alias(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	templateID := uuid.New()

	likes := &MockLikeService{}
	likes.On("Toggle", mock.Anything, user.ID, templateID).
		Return(&service.LikeToggleOutput{Liked: true, LikeCount: 1}, nil)

	r := setupTemplateRouter(NewTemplateHandler(&MockTemplateService{}, likes), user)
	req := httptest.NewRequest("POST", "/api/templates/"+templateID.String()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
	likes.AssertExpectations(t)
}

func TestTemplateHandler_Preview(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	templateID := uuid.New()

	svc := &MockTemplateService{}
	svc.On("Preview", mock.Anything, templateID).
		Return("<!DOCTYPE html>\n<html><body>preview</body></html>", nil)

	r := setupTemplateRouter(NewTemplateHandler(svc, &MockLikeService{}), user)
	req := httptest.NewRequest("GET", "/api/templates/"+templateID.String()+"/preview", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "preview")
}

func TestTemplateHandler_List_SortBinding(t *testing.T) {
	user := &model.User{ID: uuid.New()}

	t.Run("valid sort", func(t *testing.T) {
		svc := &MockTemplateService{}
		svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListTemplatesInput) bool {
			return in.SortBy == "like_count" && in.SortDesc
		})).Return(&service.ListTemplatesOutput{}, nil)

		r := setupTemplateRouter(NewTemplateHandler(svc, &MockLikeService{}), user)
		req := httptest.NewRequest("GET", "/api/templates?sortBy=like_count", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown sort column is rejected", func(t *testing.T) {
		r := setupTemplateRouter(NewTemplateHandler(&MockTemplateService{}, &MockLikeService{}), user)
		req := httptest.NewRequest("GET", "/api/templates?sortBy=password", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
