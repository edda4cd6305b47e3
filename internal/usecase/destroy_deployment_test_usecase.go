package usecase

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

type DestroyDeploymentTestUsecase interface {
	Execute(ctx context.Context, workspaceID, id entity.ID) error
}

type destroyDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

// Execute soft-deletes the test. Destroying an already-deleted test
// succeeds; tests are never hard-deleted.
func (d *destroyDeploymentTestUsecaseImpl) Execute(ctx context.Context, workspaceID, id entity.ID) error {
	return d.deploymentTestRepository.SoftDelete(ctx, workspaceID, id)
}

func NewDestroyDeploymentTestUsecase(i *do.Injector) (DestroyDeploymentTestUsecase, error) {
	return &destroyDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
