package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TemplateStatusDraft     = "draft"
	TemplateStatusPublished = "published"
	TemplateStatusArchived  = "archived"
)

// Template is a shared library item, distinct from a user's Project.
// like_count is denormalized and must always equal the number of Like rows;
// the like service is the only writer and keeps the two in one transaction.
type Template struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index:ix_templates_name" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`

	HTMLContent string `gorm:"type:text;not null" json:"htmlContent"`
	CSSContent  string `gorm:"type:text;not null;default:''" json:"cssContent"`
	JSContent   string `gorm:"type:text;not null;default:''" json:"jsContent"`

	Category string                      `gorm:"type:varchar(100);index:ix_templates_category" json:"category,omitempty"`
	Tags     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`

	IsPublic  bool   `gorm:"not null;default:true" json:"isPublic"`
	Thumbnail string `gorm:"type:varchar(500)" json:"thumbnail,omitempty"`
	Version   string `gorm:"type:varchar(20);not null;default:'1.0.0'" json:"version"`

	DownloadCount int64 `gorm:"not null;default:0" json:"downloadCount"`
	ViewCount     int64 `gorm:"not null;default:0" json:"viewCount"`
	LikeCount     int64 `gorm:"not null;default:0" json:"likeCount"`

	Status string `gorm:"type:text;not null;default:'draft';check:status IN ('draft','published','archived');index:ix_templates_status" json:"status"`

	// Nullable creator: library templates survive their author leaving.
	UserID *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
	Likes []Like `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Template) TableName() string { return "templates" }
