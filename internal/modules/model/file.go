package model

import (
	"time"

	"github.com/google/uuid"
)

// File is upload metadata only; the bytes live outside this service. Note
// there is no project reference: files belong to a user, which is why the
// project delete path removes files by owner.
type File struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:ix_files_user" json:"userId"`

	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"originalName"`
	FilePath     string `gorm:"type:varchar(500);not null" json:"filePath"`
	FileSize     int64  `gorm:"not null" json:"fileSize"`
	MimeType     string `gorm:"type:varchar(100);not null" json:"mimeType"`
	Description  string `gorm:"type:text;not null;default:''" json:"description"`
	IsPublic     bool   `gorm:"not null;default:false" json:"isPublic"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (File) TableName() string { return "files" }
