package repository

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

type CommitRepository interface {
	Create(ctx context.Context, commit *entity.Commit) (*entity.Commit, error)
	GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Commit, error)
	// GetHeadByProject resolves the project's current head commit.
	// Returns entity.ErrNotFound when the project has no head yet.
	GetHeadByProject(ctx context.Context, workspaceID, projectID entity.ID) (*entity.Commit, error)
}

type commitRepositoryImpl struct {
	db *gorm.DB
}

func NewCommitRepository(db *gorm.DB) CommitRepository {
	return &commitRepositoryImpl{db: db}
}

func (r *commitRepositoryImpl) Create(ctx context.Context, commit *entity.Commit) (*entity.Commit, error) {
	var model Commit
	model.FromEntity(commit)
	if err := gorm.G[Commit](r.db).Create(ctx, &model); err != nil {
		return nil, asEntityErr(err)
	}
	return model.ToEntity(), nil
}

func (r *commitRepositoryImpl) GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Commit, error) {
	found, err := gorm.G[Commit](r.db).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}

func (r *commitRepositoryImpl) GetHeadByProject(ctx context.Context, workspaceID, projectID entity.ID) (*entity.Commit, error) {
	project, err := gorm.G[Project](r.db).
		Where("id = ? AND workspace_id = ?", projectID.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	if project.HeadCommitID == nil {
		return nil, entity.ErrNotFound
	}
	found, err := gorm.G[Commit](r.db).
		Where("id = ? AND workspace_id = ?", *project.HeadCommitID, workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}
