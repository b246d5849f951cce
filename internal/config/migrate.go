package config

import (
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/like"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
		&follow.Follow{},
		&notification.Notification{},
		&notification.DeviceToken{},
		&pushqueue.PushQueue{},
	)
}
