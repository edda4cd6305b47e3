package repository

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) (*entity.Project, error)
	GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Project, error)
	SetHeadCommit(ctx context.Context, workspaceID, id, commitID entity.ID) error
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	var model Project
	model.FromEntity(project)
	if err := gorm.G[Project](r.db).Create(ctx, &model); err != nil {
		return nil, asEntityErr(err)
	}
	return model.ToEntity(), nil
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Project, error) {
	found, err := gorm.G[Project](r.db).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}

// SetHeadCommit moves the project's live pointer to the given commit.
func (r *projectRepositoryImpl) SetHeadCommit(ctx context.Context, workspaceID, id, commitID entity.ID) error {
	res := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		Update("head_commit_id", commitID.Uint())
	if res.Error != nil {
		return asEntityErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
