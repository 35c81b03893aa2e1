package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// RequestMeta carries the network metadata recorded on audit logs.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type CreateProjectInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	TemplateID  string
	Meta        RequestMeta
}

type UpdateProjectInput struct {
	ProjectID uuid.UUID
	OwnerID   uuid.UUID

	Name        *string
	Description *string
	Status      *string
	IsPublic    *bool
	Settings    map[string]any
	HTMLCode    *string

	Meta RequestMeta
}

type PublishOutput struct {
	Project     *model.Project     `json:"project"`
	Publication *model.Publication `json:"publication"`
}

type ProjectStatsOutput struct {
	model.ProjectStats
	ProjectName string    `json:"projectName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectService owns the draft/published/archived state machine and keeps
// a project's status, its single publication snapshot, its counters, and
// its audit trail moving together.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error)
	View(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*model.Project, error)
	Update(ctx context.Context, in UpdateProjectInput) (*model.Project, error)
	Duplicate(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*model.Project, error)
	Publish(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*PublishOutput, error)
	Unpublish(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) error
	Delete(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) error
	Stats(ctx context.Context, projectID, ownerID uuid.UUID) (*ProjectStatsOutput, error)
	GetCode(ctx context.Context, projectID, ownerID uuid.UUID) (string, error)
	UpdateCode(ctx context.Context, projectID, ownerID uuid.UUID, content string, meta RequestMeta) error
}

type projectService struct {
	projects     repo.ProjectRepo
	publications repo.PublicationRepo
	activities   repo.ActivityRepo
	logs         repo.ProjectLogRepo
	log          *zap.Logger
}

func NewProjectService(
	projects repo.ProjectRepo,
	publications repo.PublicationRepo,
	activities repo.ActivityRepo,
	logs repo.ProjectLogRepo,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		projects:     projects,
		publications: publications,
		activities:   activities,
		logs:         logs,
		log:          log,
	}
}

// recordActivity and recordLog are fire-and-forget: an operation must
// succeed even if its audit trail fails.
func (s *projectService) recordActivity(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, typ, description string, metadata datatypes.JSONMap) {
	a := &model.Activity{
		UserID:      userID,
		ProjectID:   projectID,
		Type:        typ,
		Description: description,
		Metadata:    metadata,
	}
	if err := s.activities.Create(ctx, a); err != nil {
		s.log.Warn("activity write failed", zap.String("type", typ), zap.Error(err))
	}
}

func (s *projectService) recordLog(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, action, description string, metadata datatypes.JSONMap, meta RequestMeta) {
	l := &model.ProjectLog{
		UserID:      userID,
		ProjectID:   projectID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	}
	if err := s.logs.Create(ctx, l); err != nil {
		s.log.Warn("project log write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if in.Name == "" {
		return nil, &ValidationError{Msg: "project name is required"}
	}

	p := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		TemplateID:  in.TemplateID,
		OwnerID:     in.OwnerID,
		Status:      model.ProjectStatusDraft,
		Settings:    model.DefaultSettings(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, wrapStorageErr(err)
	}

	meta := datatypes.JSONMap{"templateId": in.TemplateID}
	s.recordActivity(ctx, in.OwnerID, &p.ID, model.ActivityProjectCreated,
		"created project "+in.Name, meta)
	s.recordLog(ctx, in.OwnerID, &p.ID, model.LogActionCreated,
		"created project "+in.Name,
		datatypes.JSONMap{"templateId": in.TemplateID, "projectName": in.Name}, in.Meta)

	return p, nil
}

func (s *projectService) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return projects, nil
}

func (s *projectService) View(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*model.Project, error) {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	// Single-statement increment; a failure here is not worth failing the
	// read over.
	if err := s.projects.IncrementViews(ctx, p.ID); err != nil {
		s.log.Warn("view count increment failed", zap.String("project_id", p.ID.String()), zap.Error(err))
	} else {
		p.ViewCount++
	}

	s.recordLog(ctx, ownerID, &p.ID, model.LogActionViewed,
		"viewed project "+p.Name,
		datatypes.JSONMap{"projectName": p.Name}, meta)

	return p, nil
}

func validProjectStatus(status string) bool {
	switch status {
	case model.ProjectStatusDraft, model.ProjectStatusPublished, model.ProjectStatusArchived:
		return true
	}
	return false
}

func (s *projectService) Update(ctx context.Context, in UpdateProjectInput) (*model.Project, error) {
	p, err := s.projects.GetOwned(ctx, in.ProjectID, in.OwnerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	fields := map[string]any{}
	changed := []string{}

	if in.Name != nil {
		fields["name"] = *in.Name
		p.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Description != nil {
		fields["description"] = *in.Description
		p.Description = *in.Description
		changed = append(changed, "description")
	}
	if in.Status != nil {
		if !validProjectStatus(*in.Status) {
			return nil, &ValidationError{Msg: "invalid project status: " + *in.Status}
		}
		fields["status"] = *in.Status
		p.Status = *in.Status
		changed = append(changed, "status")
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
		p.IsPublic = *in.IsPublic
		changed = append(changed, "isPublic")
	}

	if in.Settings != nil || in.HTMLCode != nil {
		merged := datatypes.JSONMap{}
		for k, v := range p.Settings {
			merged[k] = v
		}
		if in.Settings != nil {
			// Shallow merge: provided keys overwrite, the rest survive.
			for k, v := range in.Settings {
				merged[k] = v
			}
			changed = append(changed, "settings")
		}
		if in.HTMLCode != nil {
			merged["htmlCode"] = *in.HTMLCode
			changed = append(changed, "htmlCode")
		}
		fields["settings"] = merged
		p.Settings = merged
	}

	// edit_count goes up on every call, even a no-op patch.
	if err := s.projects.Patch(ctx, p.ID, fields, true); err != nil {
		return nil, wrapStorageErr(err)
	}
	p.EditCount++

	s.recordActivity(ctx, in.OwnerID, &p.ID, model.ActivityProjectUpdated,
		"updated project "+p.Name,
		datatypes.JSONMap{"updatedFields": changed})
	s.recordLog(ctx, in.OwnerID, &p.ID, model.LogActionUpdated,
		"updated project "+p.Name,
		datatypes.JSONMap{"updatedFields": changed, "projectName": p.Name}, in.Meta)

	return p, nil
}

func (s *projectService) Duplicate(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*model.Project, error) {
	original, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	settings := datatypes.JSONMap{}
	for k, v := range original.Settings {
		settings[k] = v
	}

	copy := &model.Project{
		Name:        original.Name + " (복제)",
		Description: original.Description,
		TemplateID:  original.TemplateID,
		OwnerID:     ownerID,
		Status:      model.ProjectStatusDraft,
		Settings:    settings,
		IsPublic:    false,
	}
	if err := s.projects.Create(ctx, copy); err != nil {
		return nil, wrapStorageErr(err)
	}

	s.recordActivity(ctx, ownerID, &copy.ID, model.ActivityProjectDuplicated,
		"duplicated project "+original.Name,
		datatypes.JSONMap{"originalProjectId": original.ID.String()})
	s.recordLog(ctx, ownerID, &copy.ID, model.LogActionDuplicated,
		"duplicated project "+original.Name,
		datatypes.JSONMap{"originalProjectId": original.ID.String(), "projectName": copy.Name}, meta)

	return copy, nil
}

func (s *projectService) Publish(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) (*PublishOutput, error) {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	now := time.Now()
	pub, err := s.projects.Publish(ctx, p, now)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	// Reload so the response reflects the committed state.
	p, err = s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	s.recordActivity(ctx, ownerID, &p.ID, model.ActivityProjectPublished,
		"published project "+p.Name,
		datatypes.JSONMap{
			"publicationId": pub.ID.String(),
			"version":       pub.Version,
			"publishedAt":   now,
		})
	s.recordLog(ctx, ownerID, &p.ID, model.LogActionPublished,
		"published project "+p.Name,
		datatypes.JSONMap{
			"publicationId": pub.ID.String(),
			"version":       pub.Version,
			"projectName":   p.Name,
		}, meta)

	return &PublishOutput{Project: p, Publication: pub}, nil
}

func (s *projectService) Unpublish(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) error {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return wrapStorageErr(err)
	}

	if p.Status != model.ProjectStatusPublished {
		return &ConflictError{Msg: "project is not published"}
	}

	if err := s.projects.Unpublish(ctx, p.ID); err != nil {
		return wrapStorageErr(err)
	}

	s.recordActivity(ctx, ownerID, &p.ID, model.ActivityProjectUnpublished,
		"unpublished project "+p.Name,
		datatypes.JSONMap{
			"previousStatus": model.ProjectStatusPublished,
			"newStatus":      model.ProjectStatusDraft,
		})
	s.recordLog(ctx, ownerID, &p.ID, model.LogActionUnpublished,
		"unpublished project "+p.Name,
		datatypes.JSONMap{"projectName": p.Name}, meta)

	return nil
}

func (s *projectService) Delete(ctx context.Context, projectID, ownerID uuid.UUID, meta RequestMeta) error {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return wrapStorageErr(err)
	}

	// Business-rule guard, checked before the transaction: a published
	// snapshot must be withdrawn first.
	count, err := s.publications.CountByProject(ctx, p.ID)
	if err != nil {
		return wrapStorageErr(err)
	}
	if count > 0 {
		return &ConflictError{
			Msg:              "project has publications; unpublish it first",
			HasPublications:  true,
			PublicationCount: count,
		}
	}

	if err := s.projects.DeleteCascade(ctx, p); err != nil {
		return wrapStorageErr(err)
	}

	// The project is gone; the log row carries no project reference.
	s.recordLog(ctx, ownerID, nil, model.LogActionDeleted,
		"deleted project "+p.Name,
		datatypes.JSONMap{"projectName": p.Name, "projectId": p.ID.String()}, meta)

	return nil
}

func (s *projectService) Stats(ctx context.Context, projectID, ownerID uuid.UUID) (*ProjectStatsOutput, error) {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return &ProjectStatsOutput{
		ProjectStats: p.Stats(),
		ProjectName:  p.Name,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func (s *projectService) GetCode(ctx context.Context, projectID, ownerID uuid.UUID) (string, error) {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return "", wrapStorageErr(err)
	}
	return p.HTMLCode(), nil
}

func (s *projectService) UpdateCode(ctx context.Context, projectID, ownerID uuid.UUID, content string, meta RequestMeta) error {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return wrapStorageErr(err)
	}

	settings := datatypes.JSONMap{}
	for k, v := range p.Settings {
		settings[k] = v
	}
	settings["htmlCode"] = content

	if err := s.projects.Patch(ctx, p.ID, map[string]any{"settings": settings}, true); err != nil {
		return wrapStorageErr(err)
	}

	s.recordActivity(ctx, ownerID, &p.ID, model.ActivityCodeUpdated,
		"updated code for project "+p.Name,
		datatypes.JSONMap{"codeLength": len(content)})
	s.recordLog(ctx, ownerID, &p.ID, model.LogActionUpdated,
		"updated code for project "+p.Name,
		datatypes.JSONMap{"codeLength": len(content), "updateType": "code", "projectName": p.Name}, meta)

	return nil
}
