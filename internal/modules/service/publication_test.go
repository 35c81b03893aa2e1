package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPublicationService_Versions(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("published project yields its single snapshot", func(t *testing.T) {
		pubs := &MockPublicationRepo{}
		pub := &model.Publication{
			ID:          uuid.New(),
			ProjectID:   projectID,
			Title:       "portfolio",
			Version:     1,
			PublishedAt: time.Now(),
		}
		pubs.On("GetByProject", ctx, projectID).Return(pub, nil)

		svc := NewPublicationService(pubs)

		versions, err := svc.Versions(ctx, projectID)
		assert.NoError(t, err)
		assert.Len(t, versions, 1)
		assert.Equal(t, pub.ID, versions[0].ID)
		assert.Equal(t, 1, versions[0].Version)
	})

	t.Run("never-published project is not found", func(t *testing.T) {
		pubs := &MockPublicationRepo{}
		pubs.On("GetByProject", ctx, projectID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPublicationService(pubs)

		_, err := svc.Versions(ctx, projectID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPublicationService_GetCode(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	pubs := &MockPublicationRepo{}
	pubs.On("IncrementViews", ctx, id).Return(&model.Publication{
		ID:    id,
		Title: "landing",
		Content: model.PublicationContent{
			HTMLCode: "<h1>hi</h1>",
			Settings: map[string]any{"theme": "dark"},
		},
		ViewCount: 42,
	}, nil)

	svc := NewPublicationService(pubs)

	out, err := svc.GetCode(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", out.HTMLCode)
	assert.Equal(t, int64(42), out.ViewCount)
	assert.Equal(t, "dark", out.Settings["theme"])
}
