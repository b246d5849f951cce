package workers

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	pushQueuePort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/pushqueue"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// PushWorker drains push_queue and hands each notification to the Pusher.
type PushWorker struct {
	QueueRepo        pushQueuePort.PushQueueRepository
	NotificationRepo notificationPort.NotificationRepository
	DeviceRepo       notificationPort.DeviceRepository
	Pusher           notificationPort.Pusher
	BatchSize        int
	PollInterval     time.Duration
	Logger           *zap.Logger
}

func NewPushWorker(
	queueRepo pushQueuePort.PushQueueRepository,
	notificationRepo notificationPort.NotificationRepository,
	deviceRepo notificationPort.DeviceRepository,
	pusher notificationPort.Pusher,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *PushWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &PushWorker{
		QueueRepo:        queueRepo,
		NotificationRepo: notificationRepo,
		DeviceRepo:       deviceRepo,
		Pusher:           pusher,
		BatchSize:        batchSize,
		PollInterval:     pollInterval,
		Logger:           logger,
	}
}

// Run polls until ctx is cancelled. A full batch is followed immediately by the next one.
func (w *PushWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 PushWorker started", zap.Int("batchSize", w.BatchSize), zap.Duration("pollInterval", w.PollInterval))
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 PushWorker stopped")
			return
		case <-timer.C:
			n, err := w.ProcessPending(ctx)
			if err != nil && ctx.Err() == nil {
				w.Logger.Error("❌ Error fetching pending pushes", zap.Error(err))
			}
			wait := w.PollInterval
			if err == nil && n == w.BatchSize {
				wait = 0
			}
			timer.Reset(wait)
		}
	}
}

// ProcessPending handles one batch of pending rows and returns how many it took.
func (w *PushWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.QueueRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		return 0, err
	}
	for _, item := range pending {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		w.process(ctx, item)
	}
	return len(pending), nil
}

func (w *PushWorker) process(ctx context.Context, item *pushqueue.PushQueue) {
	if err := w.deliver(ctx, item); err != nil {
		w.Logger.Warn("⚠️ Push delivery failed",
			zap.String("queueID", item.ID.String()),
			zap.String("notificationID", item.NotificationID.String()),
			zap.Error(err))
		w.mark(ctx, item.ID, w.QueueRepo.MarkFailed)
		return
	}
	w.mark(ctx, item.ID, w.QueueRepo.MarkDone)
}

func (w *PushWorker) deliver(ctx context.Context, item *pushqueue.PushQueue) error {
	n, err := w.NotificationRepo.FindByID(ctx, item.NotificationID)
	if err != nil {
		return err
	}

	tokens, err := w.DeviceRepo.ListTokensByUser(ctx, item.UserID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		w.Logger.Debug("No devices registered", zap.String("userID", item.UserID.String()))
		return nil
	}

	res, err := w.Pusher.Send(ctx, tokens, n.Title, n.Message, pushData(n))
	if err != nil {
		return err
	}
	w.Logger.Info("📨 Push sent",
		zap.String("notificationID", n.ID.String()),
		zap.Int("success", res.SuccessCount),
		zap.Int("failure", res.FailureCount))

	if len(res.Unregistered) > 0 {
		if err := w.DeviceRepo.DeleteTokens(ctx, res.Unregistered); err != nil {
			w.Logger.Warn("⚠️ Could not remove unregistered tokens", zap.Error(err))
		}
	}
	return nil
}

func (w *PushWorker) mark(ctx context.Context, id uuid.UUID, fn func(context.Context, uuid.UUID) error) {
	if err := fn(ctx, id); err != nil {
		w.Logger.Warn("⚠️ Could not update push_queue row", zap.String("queueID", id.String()), zap.Error(err))
	}
}

func pushData(n *notification.Notification) map[string]string {
	data := map[string]string{
		"notificationId": n.ID.String(),
		"type":           n.Type,
	}
	if n.PostID != nil {
		data["postId"] = n.PostID.String()
	}
	if n.CommentID != nil {
		data["commentId"] = n.CommentID.String()
	}
	return data
}
