package model

import (
	"time"

	"github.com/google/uuid"
)

// Publication is the snapshot backing a project's published view. Publish
// upserts the single row per project and unpublish hard-deletes it, so a
// row existing is exactly equivalent to the project being published.
type Publication struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_publications_project" json:"projectId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:ix_publications_user_published,priority:1" json:"userId"`

	// Version stays at 1 on the update path: publish overwrites the
	// snapshot in place rather than appending history.
	Version     int    `gorm:"not null;default:1" json:"version"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`

	Content  PublicationContent  `gorm:"type:jsonb;not null;serializer:json" json:"content"`
	Metadata PublicationMetadata `gorm:"type:jsonb;not null;serializer:json" json:"metadata"`

	PublishedAt time.Time `gorm:"not null;index:ix_publications_published;index:ix_publications_user_published,priority:2" json:"publishedAt"`

	ViewCount     int64 `gorm:"not null;default:0" json:"viewCount"`
	DownloadCount int64 `gorm:"not null;default:0" json:"downloadCount"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE;" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

// PublicationContent is the frozen project content at publish time.
type PublicationContent struct {
	HTMLCode   string         `json:"htmlCode"`
	Settings   map[string]any `json:"settings"`
	TemplateID string         `json:"templateId,omitempty"`
}

// PublicationMetadata denormalizes display-relevant project state at
// publish time.
type PublicationMetadata struct {
	ProjectStatus string `json:"projectStatus"`
	IsPublic      bool   `json:"isPublic"`
	Theme         string `json:"theme"`
	Layout        string `json:"layout"`
}

func (Publication) TableName() string { return "publications" }
