package database

import (
	"context"
	"errors"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/like"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var errPostGone = errors.New("post gone")

// LikeRepositoryDatabase pairs every like insert/delete with the counter update.
type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

func (repo *LikeRepositoryDatabase) Find(ctx context.Context, userID, postID uuid.UUID) (*like.Like, error) {
	var l like.Like
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&l).Error; err != nil {
		return nil, translate(err, "like")
	}
	return &l, nil
}

func (repo *LikeRepositoryDatabase) Create(ctx context.Context, l *like.Like) (*like.Like, *post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		res := tx.Model(&post.Post{}).
			Where("id = ? AND is_active = ?", l.PostID, true).
			Update("likes_count", gorm.Expr("likes_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPostGone
		}
		return tx.Preload("User").Where("id = ?", l.PostID).First(&p).Error
	})
	switch {
	case err == nil:
		return l, &p, nil
	case errors.Is(err, errPostGone):
		return nil, nil, apperr.NotFound("post not found")
	default:
		return nil, nil, translate(err, "like")
	}
}

func (repo *LikeRepositoryDatabase) Delete(ctx context.Context, userID, postID uuid.UUID) (*like.Like, *post.Post, error) {
	var l like.Like
	var p post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&l).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", l.ID).Delete(&like.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// removed by a concurrent unlike between the read and the delete
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&post.Post{}).
			Where("id = ?", postID).
			Update("likes_count", gorm.Expr("likes_count - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Preload("User").Where("id = ?", postID).First(&p).Error
	})
	if err != nil {
		return nil, nil, translate(err, "like")
	}
	return &l, &p, nil
}

func (repo *LikeRepositoryDatabase) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).Model(&like.Like{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
