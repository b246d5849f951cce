package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FollowRepositoryDatabase implements FollowRepository on gorm.
type FollowRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowRepositoryDatabase(db *gorm.DB) *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{db: db}
}

func (repo *FollowRepositoryDatabase) Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error) {
	if err := repo.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, translate(err, "follow")
	}
	return f, nil
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	res := repo.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&follow.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("you are not following this user")
	}
	return nil
}

func (repo *FollowRepositoryDatabase) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follow.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowRepositoryDatabase) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&follow.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (repo *FollowRepositoryDatabase) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&follow.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (repo *FollowRepositoryDatabase) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*follow.Follow, error) {
	var followers []*follow.Follow
	if err := repo.db.WithContext(ctx).Where("following_id = ?", userID).Order("created_at DESC").Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowRepositoryDatabase) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*follow.Follow, error) {
	var following []*follow.Follow
	if err := repo.db.WithContext(ctx).Where("follower_id = ?", userID).Order("created_at DESC").Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}
