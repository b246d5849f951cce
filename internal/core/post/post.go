package post

import (
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	ID            uuid.UUID                   `gorm:"primary_key;type:char(36)"`
	Title         string                      `gorm:"type:varchar(200);not null"`
	Description   string                      `gorm:"type:text;not null"`
	Latitude      float64                     `gorm:"not null"`
	Longitude     float64                     `gorm:"not null"`
	Phone         string                      `gorm:"type:varchar(40);not null"`
	Images        datatypes.JSONSlice[string] `gorm:"not null"`
	LikesCount    int                         `gorm:"not null"`
	CommentsCount int                         `gorm:"not null"`
	IsActive      bool                        `gorm:"not null;index"`
	UserID        uuid.UUID                   `gorm:"type:char(36);not null;index"`
	User          user.User                   `gorm:"foreignkey:UserID"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}
