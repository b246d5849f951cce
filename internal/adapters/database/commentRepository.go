package database

import (
	"context"
	"errors"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// CommentRepositoryDatabase pairs comment inserts and soft deletes with the counter update.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		res := tx.Model(&post.Post{}).
			Where("id = ? AND is_active = ?", c.PostID, true).
			Update("comments_count", gorm.Expr("comments_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPostGone
		}
		return tx.Where("id = ?", c.UserID).First(&c.User).Error
	})
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, errPostGone):
		return nil, apperr.NotFound("post not found")
	default:
		return nil, translate(err, "comment")
	}
}

func (repo *CommentRepositoryDatabase) FindActiveByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&c).Error; err != nil {
		return nil, translate(err, "comment")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) ListActiveByPost(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	return repo.ListActiveByPosts(ctx, []uuid.UUID{postID})
}

func (repo *CommentRepositoryDatabase) ListActiveByPosts(ctx context.Context, postIDs []uuid.UUID) ([]*comment.Comment, error) {
	comments := []*comment.Comment{}
	if len(postIDs) == 0 {
		return comments, nil
	}
	if err := repo.db.WithContext(ctx).Preload("User").
		Where("post_id IN ? AND is_active = ?", postIDs, true).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) SoftDelete(ctx context.Context, c *comment.Comment) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&comment.Comment{}).
			Where("id = ? AND is_active = ?", c.ID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&post.Post{}).
			Where("id = ?", c.PostID).
			Update("comments_count", gorm.Expr("CASE WHEN comments_count > 0 THEN comments_count - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return translate(err, "comment")
	}
	c.IsActive = false
	return nil
}
