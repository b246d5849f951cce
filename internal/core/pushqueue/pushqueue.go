package pushqueue

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// PushQueue is one pending push delivery of a notification to its recipient's devices.
type PushQueue struct {
	ID             uuid.UUID  `gorm:"primary_key;type:char(36)"`
	NotificationID uuid.UUID  `gorm:"type:char(36);not null"`
	UserID         uuid.UUID  `gorm:"type:char(36);not null"`
	Status         string     `gorm:"type:varchar(20);not null;index"` // pending, done, failed
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	ProcessedAt    *time.Time `gorm:"index"`
}

func (PushQueue) TableName() string { return "push_queue" }

func (q *PushQueue) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
