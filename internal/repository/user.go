package repository

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.User, error)
}

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	var model User
	model.FromEntity(user)
	if err := gorm.G[User](r.db).Create(ctx, &model); err != nil {
		return nil, asEntityErr(err)
	}
	return model.ToEntity(), nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.User, error) {
	found, err := gorm.G[User](r.db).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}
