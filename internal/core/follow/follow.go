package follow

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	FollowerID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follower_following"`
	FollowingID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follower_following;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
