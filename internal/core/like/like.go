package like

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Like is unique per (UserID, PostID).
type Like struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_post"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_post;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
