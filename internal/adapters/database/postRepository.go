package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err, "post")
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindActiveByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.active(ctx).Preload("User").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err, "post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListActive(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.active(ctx).Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.active(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}
	var posts []*post.Post
	if err := repo.active(ctx).Preload("User").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SoftDelete flips is_active; a post that is already inactive counts as missing.
func (repo *PostRepositoryDatabase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := repo.active(ctx).Model(&post.Post{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (repo *PostRepositoryDatabase) active(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Where("posts.is_active = ?", true)
}
