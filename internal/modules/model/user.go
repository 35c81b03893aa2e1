package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Name  string    `gorm:"type:varchar(50);not null" json:"name"`

	// API key credentials. The HMAC column is the lookup digest; the PHC
	// column holds the argon2id hash for optional strict verification.
	// Issuance lives outside this service.
	APIKeyHMAC string `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	APIKeyPHC  string `gorm:"type:text;not null;default:''" json:"-"`

	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Projects    []Project    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Files       []File       `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Likes       []Like       `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Activities  []Activity   `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	ProjectLogs []ProjectLog `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
