package comment

import (
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Content   string    `gorm:"type:text;not null"`
	Rating    int       `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	User      user.User `gorm:"foreignkey:UserID"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
