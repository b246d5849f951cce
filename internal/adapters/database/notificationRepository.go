package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

type NotificationRepositoryDatabase struct {
	db *gorm.DB
}

func NewNotificationRepositoryDatabase(db *gorm.DB) *NotificationRepositoryDatabase {
	return &NotificationRepositoryDatabase{db: db}
}

func (repo *NotificationRepositoryDatabase) Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	if err := repo.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, translate(err, "notification")
	}
	return n, nil
}

func (repo *NotificationRepositoryDatabase) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(ns, insertBatchSize).Error
	})
}

func (repo *NotificationRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, translate(err, "notification")
	}
	return &n, nil
}

func (repo *NotificationRepositoryDatabase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	ns := []*notification.Notification{}
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

// DeviceRepositoryDatabase stores FCM registration tokens.
type DeviceRepositoryDatabase struct {
	db *gorm.DB
}

func NewDeviceRepositoryDatabase(db *gorm.DB) *DeviceRepositoryDatabase {
	return &DeviceRepositoryDatabase{db: db}
}

// Upsert moves an existing token to the given user.
func (repo *DeviceRepositoryDatabase) Upsert(ctx context.Context, d *notification.DeviceToken) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
	}).Create(d).Error
}

func (repo *DeviceRepositoryDatabase) ListTokensByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var tokens []string
	if err := repo.db.WithContext(ctx).Model(&notification.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (repo *DeviceRepositoryDatabase) DeleteTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return repo.db.WithContext(ctx).Where("token IN ?", tokens).Delete(&notification.DeviceToken{}).Error
}
