package pushqueue

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"

	"github.com/gofrs/uuid"
)

type PushQueueRepository interface {
	CreateBatch(ctx context.Context, items []*pushqueue.PushQueue) error
	GetPending(ctx context.Context, limit int) ([]*pushqueue.PushQueue, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}
