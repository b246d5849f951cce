package notificationapp

import (
	"context"
	"strings"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	notificationEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"
	pushQueueEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	pushQueuePort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/pushqueue"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// NotificationService stores notifications and queues their push delivery.
// Delivery itself happens in workers.PushWorker.
type NotificationService struct {
	NotificationRepository notificationPort.NotificationRepository
	DeviceRepository       notificationPort.DeviceRepository
	PushQueueRepository    pushQueuePort.PushQueueRepository
	UserRepository         userPort.UserRepository
	Logger                 *zap.Logger
}

func NewNotificationService(
	repo notificationPort.NotificationRepository,
	deviceRepo notificationPort.DeviceRepository,
	queueRepo pushQueuePort.PushQueueRepository,
	userRepo userPort.UserRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		NotificationRepository: repo,
		DeviceRepository:       deviceRepo,
		PushQueueRepository:    queueRepo,
		UserRepository:         userRepo,
		Logger:                 logger,
	}
}

// Send creates one notification for in.UserID, or one per active user when it is nil.
func (s *NotificationService) Send(ctx context.Context, in notificationPort.SendInput) ([]*notificationPort.NotificationDTO, error) {
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if message == "" {
		return nil, apperr.Validation("message is required")
	}

	var recipients []uuid.UUID
	if in.UserID != nil {
		if _, err := s.UserRepository.FindByID(ctx, *in.UserID); err != nil {
			return nil, err
		}
		recipients = []uuid.UUID{*in.UserID}
	} else {
		ids, err := s.UserRepository.ListActiveIDs(ctx)
		if err != nil {
			return nil, err
		}
		recipients = ids
	}

	ns := make([]*notificationEntity.Notification, 0, len(recipients))
	for _, userID := range recipients {
		ns = append(ns, &notificationEntity.Notification{
			ID:      uuid.Must(uuid.NewV4()),
			Title:   title,
			Message: message,
			UserID:  userID,
			Type:    notificationEntity.TypeAdmin,
		})
	}

	if err := s.NotificationRepository.CreateBatch(ctx, ns); err != nil {
		s.Logger.Error("❌ Failed to create notifications", zap.Int("count", len(ns)), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("✅ Notifications created", zap.Int("count", len(ns)), zap.Bool("broadcast", in.UserID == nil))

	s.enqueue(ctx, ns)
	return notificationPort.ToNotificationDTOs(ns), nil
}

// Notify stores a single notification and queues its push. Used by other services.
func (s *NotificationService) Notify(ctx context.Context, n *notificationEntity.Notification) error {
	if _, err := s.NotificationRepository.Create(ctx, n); err != nil {
		return err
	}
	s.enqueue(ctx, []*notificationEntity.Notification{n})
	return nil
}

func (s *NotificationService) MyNotifications(ctx context.Context, userID uuid.UUID) ([]*notificationPort.NotificationDTO, error) {
	ns, err := s.NotificationRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return notificationPort.ToNotificationDTOs(ns), nil
}

// RegisterDevice attaches an FCM token to the user, taking it over from any previous owner.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation("token is required")
	}
	return s.DeviceRepository.Upsert(ctx, &notificationEntity.DeviceToken{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: userID,
		Token:  token,
	})
}

// enqueue is best effort: the notification is already stored and readable through the inbox.
func (s *NotificationService) enqueue(ctx context.Context, ns []*notificationEntity.Notification) {
	if s.PushQueueRepository == nil || len(ns) == 0 {
		return
	}
	items := make([]*pushQueueEntity.PushQueue, 0, len(ns))
	for _, n := range ns {
		items = append(items, &pushQueueEntity.PushQueue{
			ID:             uuid.Must(uuid.NewV4()),
			NotificationID: n.ID,
			UserID:         n.UserID,
			Status:         pushQueueEntity.StatusPending,
		})
	}
	if err := s.PushQueueRepository.CreateBatch(ctx, items); err != nil {
		s.Logger.Warn("⚠️ Failed to enqueue push delivery", zap.Int("count", len(items)), zap.Error(err))
	}
}
