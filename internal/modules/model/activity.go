package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActivityProjectCreated      = "project_created"
	ActivityProjectUpdated      = "project_updated"
	ActivityProjectPublished    = "project_published"
	ActivityProjectUnpublished  = "project_unpublished"
	ActivityProjectDeleted      = "project_deleted"
	ActivityProjectDuplicated   = "project_duplicated"
	ActivityFileUploaded        = "file_uploaded"
	ActivityFileUpdated         = "file_updated"
	ActivityCodeUpdated         = "code_updated"
	ActivityPublicationCreated  = "publication_created"
	ActivityPublicationArchived = "publication_archived"
)

// Activity is the user-facing timeline event. Append-only: nothing in the
// core ever updates or deletes a row except the project purge on delete.
type Activity struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:ix_activities_user_created,priority:1" json:"userId"`
	// Nullable so dashboard events can outlive their project.
	ProjectID *uuid.UUID `gorm:"type:uuid;index:ix_activities_project" json:"projectId,omitempty"`

	Type        string            `gorm:"type:text;not null;check:type IN ('project_created','project_updated','project_published','project_unpublished','project_deleted','project_duplicated','file_uploaded','file_updated','code_updated','publication_created','publication_archived')" json:"type"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index:ix_activities_user_created,priority:2" json:"createdAt"`

	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Activity) TableName() string { return "activities" }

// ActivityDisplay carries the dashboard rendering hints for an activity
// type. Derived, never stored.
type ActivityDisplay struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var activityDisplayMap = map[string]ActivityDisplay{
	ActivityProjectCreated:      {Icon: "✨", Color: "green"},
	ActivityProjectUpdated:      {Icon: "✏️", Color: "blue"},
	ActivityProjectPublished:    {Icon: "🚀", Color: "purple"},
	ActivityProjectUnpublished:  {Icon: "⏸️", Color: "orange"},
	ActivityProjectDeleted:      {Icon: "🗑️", Color: "red"},
	ActivityProjectDuplicated:   {Icon: "📋", Color: "orange"},
	ActivityFileUploaded:        {Icon: "📁", Color: "teal"},
	ActivityFileUpdated:         {Icon: "📝", Color: "indigo"},
	ActivityCodeUpdated:         {Icon: "💻", Color: "cyan"},
	ActivityPublicationCreated:  {Icon: "📢", Color: "purple"},
	ActivityPublicationArchived: {Icon: "📦", Color: "gray"},
}

func DisplayForActivity(activityType string) ActivityDisplay {
	if d, ok := activityDisplayMap[activityType]; ok {
		return d
	}
	return ActivityDisplay{Icon: "📝", Color: "gray"}
}
