package repository

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

var activeStatuses = []string{
	string(entity.TestStatusPending),
	string(entity.TestStatusRunning),
	string(entity.TestStatusPaused),
}

type DeploymentTestRepository interface {
	Create(ctx context.Context, test *entity.DeploymentTest) (*entity.DeploymentTest, error)
	GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error)
	ListByProject(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error)
	ListActiveByProject(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error)
	ListActiveByProjectAndType(ctx context.Context, workspaceID, projectID entity.ID, testType entity.TestType, excludeID *entity.ID) ([]*entity.DeploymentTest, error)
	Update(ctx context.Context, test *entity.DeploymentTest) (*entity.DeploymentTest, error)
	SoftDelete(ctx context.Context, workspaceID, id entity.ID) error
}

type deploymentTestRepositoryImpl struct {
	db *gorm.DB
}

func NewDeploymentTestRepository(db *gorm.DB) DeploymentTestRepository {
	return &deploymentTestRepositoryImpl{db: db}
}

// Create inserts a new test record.
func (r *deploymentTestRepositoryImpl) Create(ctx context.Context, test *entity.DeploymentTest) (*entity.DeploymentTest, error) {
	var model DeploymentTest
	model.FromEntity(test)
	if err := gorm.G[DeploymentTest](r.db).Create(ctx, &model); err != nil {
		return nil, asEntityErr(err)
	}
	return model.ToEntity(), nil
}

// GetByID finds a non-deleted test by id within a workspace.
func (r *deploymentTestRepositoryImpl) GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error) {
	found, err := gorm.G[DeploymentTest](r.db).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}

// ListByProject returns all non-deleted tests of a project, newest first.
func (r *deploymentTestRepositoryImpl) ListByProject(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error) {
	founds, err := gorm.G[DeploymentTest](r.db).
		Where("workspace_id = ? AND project_id = ?", workspaceID.Uint(), projectID.Uint()).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return toEntities(founds), nil
}

// ListActiveByProject returns pending/running/paused tests of a project.
func (r *deploymentTestRepositoryImpl) ListActiveByProject(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error) {
	founds, err := gorm.G[DeploymentTest](r.db).
		Where("workspace_id = ? AND project_id = ? AND status IN ?",
			workspaceID.Uint(), projectID.Uint(), activeStatuses).
		Find(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return toEntities(founds), nil
}

// ListActiveByProjectAndType narrows ListActiveByProject to one test type,
// optionally excluding a test checking against itself.
func (r *deploymentTestRepositoryImpl) ListActiveByProjectAndType(ctx context.Context, workspaceID, projectID entity.ID, testType entity.TestType, excludeID *entity.ID) ([]*entity.DeploymentTest, error) {
	q := gorm.G[DeploymentTest](r.db).
		Where("workspace_id = ? AND project_id = ? AND test_type = ? AND status IN ?",
			workspaceID.Uint(), projectID.Uint(), string(testType), activeStatuses)
	if excludeID != nil {
		q = q.Where("id <> ?", excludeID.Uint())
	}
	founds, err := q.Find(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return toEntities(founds), nil
}

// Update writes the mutable lifecycle fields back to the row. Selecting
// the columns explicitly so zero values (percentage 0) are persisted.
func (r *deploymentTestRepositoryImpl) Update(ctx context.Context, test *entity.DeploymentTest) (*entity.DeploymentTest, error) {
	var model DeploymentTest
	model.FromEntity(test)
	res := r.db.WithContext(ctx).
		Model(&DeploymentTest{}).
		Where("id = ? AND workspace_id = ?", test.ID.Uint(), test.WorkspaceID.Uint()).
		Select("traffic_percentage", "status", "started_at", "ended_at").
		Updates(&model)
	if res.Error != nil {
		return nil, asEntityErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entity.ErrNotFound
	}
	return r.GetByID(ctx, test.WorkspaceID, test.ID)
}

// SoftDelete marks the test deleted. Deleting an already-deleted test
// succeeds; an id that never existed is a not-found error.
func (r *deploymentTestRepositoryImpl) SoftDelete(ctx context.Context, workspaceID, id entity.ID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		Delete(&DeploymentTest{})
	if res.Error != nil {
		return asEntityErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Unscoped().
			Model(&DeploymentTest{}).
			Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
			Count(&n).Error; err != nil {
			return asEntityErr(err)
		}
		if n == 0 {
			return entity.ErrNotFound
		}
	}
	return nil
}

func toEntities(models []DeploymentTest) []*entity.DeploymentTest {
	res := make([]*entity.DeploymentTest, len(models))
	for i := range models {
		res[i] = models[i].ToEntity()
	}
	return res
}
