package database

import (
	"context"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) List(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := repo.db.WithContext(ctx).Model(&user.User{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *UserRepositoryDatabase) SetActive(ctx context.Context, id uuid.UUID, active bool) (*user.User, error) {
	return repo.update(ctx, id, "is_active", active)
}

func (repo *UserRepositoryDatabase) SetRole(ctx context.Context, id uuid.UUID, role user.Role) (*user.User, error) {
	return repo.update(ctx, id, "role", role)
}

func (repo *UserRepositoryDatabase) update(ctx context.Context, id uuid.UUID, column string, value any) (*user.User, error) {
	var u user.User
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		if err := tx.Model(&user.User{}).Where("id = ?", id).Update(column, value).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&u).Error
	})
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}
