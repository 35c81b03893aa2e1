package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LogActionCreated     = "created"
	LogActionUpdated     = "updated"
	LogActionDeleted     = "deleted"
	LogActionPublished   = "published"
	LogActionUnpublished = "unpublished"
	LogActionViewed      = "viewed"
	LogActionDuplicated  = "duplicated"
)

// ProjectLog is the compliance-oriented audit record, carrying network
// metadata. project_id is nullable (SET NULL) so rows can survive a project
// vanishing; the core delete operation still purges a project's logs
// explicitly as part of its transaction.
type ProjectLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index:ix_project_logs_project_created,priority:1" json:"projectId,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:ix_project_logs_user_created,priority:1" json:"userId"`

	Action      string            `gorm:"type:text;not null;check:action IN ('created','updated','deleted','published','unpublished','viewed','duplicated');index:ix_project_logs_action" json:"action"`
	Description string            `gorm:"type:text;not null;default:''" json:"description"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	// 45 chars covers IPv6 with an embedded IPv4 suffix.
	IPAddress string `gorm:"type:varchar(45)" json:"ipAddress,omitempty"`
	UserAgent string `gorm:"type:text" json:"userAgent,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index:ix_project_logs_project_created,priority:2;index:ix_project_logs_user_created,priority:2" json:"createdAt"`

	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectLog) TableName() string { return "project_logs" }
