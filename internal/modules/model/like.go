package model

import (
	"time"

	"github.com/google/uuid"
)

// Like joins a user to a template. The composite unique index enforces one
// like per user per template.
type Like struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_user_template,priority:1;index:ix_likes_user" json:"userId"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_user_template,priority:2;index:ix_likes_template" json:"templateId"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	User     *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Template *Template `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Like) TableName() string { return "likes" }
