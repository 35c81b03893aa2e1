package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
	ProjectStatusArchived  = "archived"
)

// Project is a user's editable website unit. The live HTML lives inside the
// settings JSONB under "htmlCode"; counters are dedicated columns so they
// can be bumped with a single UPDATE instead of a read-modify-write on the
// blob.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	// TemplateID references the template the project started from. Free
	// string, deliberately not a foreign key.
	TemplateID string    `gorm:"type:varchar(100)" json:"templateId,omitempty"`
	Status     string    `gorm:"type:text;not null;default:'draft';check:status IN ('draft','published','archived');index:ix_projects_status" json:"status"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index:ix_projects_owner_updated,priority:1" json:"ownerId"`

	Settings datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`

	ViewCount        int64      `gorm:"not null;default:0" json:"-"`
	EditCount        int64      `gorm:"not null;default:0" json:"-"`
	PublicationCount int        `gorm:"not null;default:0" json:"-"`
	LastPublishedAt  *time.Time `json:"-"`

	IsPublic bool `gorm:"not null;default:false;index:ix_projects_is_public" json:"isPublic"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP;index:ix_projects_owner_updated,priority:2" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Deleting a project with live publications is rejected in the service
	// layer first; RESTRICT makes the database back that rule up.
	Publications []Publication `gorm:"constraint:OnDelete:RESTRICT,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ProjectStats is the stats object exposed over the API, assembled from the
// counter columns.
type ProjectStats struct {
	Views            int64      `json:"views"`
	Edits            int64      `json:"edits"`
	LastPublished    *time.Time `json:"lastPublished"`
	PublicationCount int        `json:"publicationCount"`
}

func (p *Project) Stats() ProjectStats {
	return ProjectStats{
		Views:            p.ViewCount,
		Edits:            p.EditCount,
		LastPublished:    p.LastPublishedAt,
		PublicationCount: p.PublicationCount,
	}
}

// MarshalJSON appends the stats object so every serialized project carries
// it; the counter columns themselves stay off the wire.
func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	return json.Marshal(struct {
		plain
		Stats ProjectStats `json:"stats"`
	}{plain(p), p.Stats()})
}

// HTMLCode reads settings.htmlCode, tolerating a missing or non-string
// value.
func (p *Project) HTMLCode() string {
	if p.Settings == nil {
		return ""
	}
	if code, ok := p.Settings["htmlCode"].(string); ok {
		return code
	}
	return ""
}

func (p *Project) settingString(key, fallback string) string {
	if p.Settings != nil {
		if v, ok := p.Settings[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func (p *Project) Theme() string  { return p.settingString("theme", "default") }
func (p *Project) Layout() string { return p.settingString("layout", "standard") }

// DefaultSettings is the settings blob every new project starts with.
func DefaultSettings() datatypes.JSONMap {
	return datatypes.JSONMap{
		"theme":    "default",
		"layout":   "standard",
		"htmlCode": "",
	}
}
