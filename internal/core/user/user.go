package user

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Role is either ADMIN or CLIENT.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole maps anything other than ADMIN to CLIENT.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleClient
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanModify reports whether a caller may mutate a resource owned by ownerID.
func CanModify(callerID uuid.UUID, callerRole Role, ownerID uuid.UUID) bool {
	return callerID == ownerID || callerRole.IsAdmin()
}

type User struct {
	ID           uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null"`
	Password     string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(16);not null"`
	IsActive     bool      `gorm:"not null"`
	ProfileImage *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
