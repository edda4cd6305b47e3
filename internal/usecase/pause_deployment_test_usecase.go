package usecase

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

type PauseDeploymentTestUsecase interface {
	Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error)
}

type pauseDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

// Execute pauses the test. Pausing an already-paused test succeeds.
func (p *pauseDeploymentTestUsecaseImpl) Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error) {
	test, err := p.deploymentTestRepository.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	test.Status = entity.TestStatusPaused
	return p.deploymentTestRepository.Update(ctx, test)
}

func NewPauseDeploymentTestUsecase(i *do.Injector) (PauseDeploymentTestUsecase, error) {
	return &pauseDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
