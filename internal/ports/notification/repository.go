package notification

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"

	"github.com/gofrs/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error)
	// CreateBatch inserts all notifications in one transaction.
	CreateBatch(ctx context.Context, ns []*notification.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
}

type DeviceRepository interface {
	Upsert(ctx context.Context, d *notification.DeviceToken) error
	ListTokensByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	DeleteTokens(ctx context.Context, tokens []string) error
}

// Notifier stores a notification and schedules its push delivery.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}

// Pusher delivers a message to device tokens.
type Pusher interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*PushResult, error)
}

type PushResult struct {
	SuccessCount int
	FailureCount int
	// Unregistered lists tokens the provider reported as no longer valid.
	Unregistered []string
}

type SendInput struct {
	Title   string
	Message string
	UserID  *uuid.UUID
}

type NotificationDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	PostID    *string   `json:"postId"`
	CommentID *string   `json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID.String(),
		Title:     n.Title,
		Message:   n.Message,
		UserID:    n.UserID.String(),
		Type:      n.Type,
		PostID:    idString(n.PostID),
		CommentID: idString(n.CommentID),
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationDTOs(ns []*notification.Notification) []*NotificationDTO {
	dtos := make([]*NotificationDTO, 0, len(ns))
	for _, n := range ns {
		dtos = append(dtos, ToNotificationDTO(n))
	}
	return dtos
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
