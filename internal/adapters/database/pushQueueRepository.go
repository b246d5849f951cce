package database

import (
	"context"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type PushQueueRepositoryDatabase struct {
	db *gorm.DB
}

func NewPushQueueRepositoryDatabase(db *gorm.DB) *PushQueueRepositoryDatabase {
	return &PushQueueRepositoryDatabase{db: db}
}

func (repo *PushQueueRepositoryDatabase) CreateBatch(ctx context.Context, items []*pushqueue.PushQueue) error {
	if len(items) == 0 {
		return nil
	}
	return repo.db.WithContext(ctx).CreateInBatches(items, insertBatchSize).Error
}

func (repo *PushQueueRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*pushqueue.PushQueue, error) {
	var items []*pushqueue.PushQueue
	if err := repo.db.WithContext(ctx).
		Where("status = ?", pushqueue.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *PushQueueRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	return repo.mark(ctx, id, pushqueue.StatusDone)
}

func (repo *PushQueueRepositoryDatabase) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return repo.mark(ctx, id, pushqueue.StatusFailed)
}

func (repo *PushQueueRepositoryDatabase) mark(ctx context.Context, id uuid.UUID, status string) error {
	now := time.Now().UTC()
	return repo.db.WithContext(ctx).Model(&pushqueue.PushQueue{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "processed_at": &now}).Error
}
