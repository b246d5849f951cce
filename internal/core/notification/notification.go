package notification

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	TypeComment = "comment"
	TypeAdmin   = "admin"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Message   string     `gorm:"type:text;not null"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Type      string     `gorm:"type:varchar(20)"`
	PostID    *uuid.UUID `gorm:"type:char(36)"`
	CommentID *uuid.UUID `gorm:"type:char(36)"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// DeviceToken is an FCM registration token owned by a user.
type DeviceToken struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (d *DeviceToken) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
