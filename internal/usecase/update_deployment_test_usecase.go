package usecase

import (
	"context"
	"fmt"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

type UpdateDeploymentTestUsecase interface {
	Execute(ctx context.Context, workspaceID, id entity.ID, trafficPercentage int) (*entity.DeploymentTest, error)
}

type updateDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

// Execute changes the traffic percentage. Status is never touched here.
func (u *updateDeploymentTestUsecaseImpl) Execute(ctx context.Context, workspaceID, id entity.ID, trafficPercentage int) (*entity.DeploymentTest, error) {
	if trafficPercentage < 0 || trafficPercentage > 100 {
		return nil, fmt.Errorf("traffic percentage must be between 0 and 100: %w", entity.ErrInvalid)
	}
	test, err := u.deploymentTestRepository.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	test.TrafficPercentage = trafficPercentage
	return u.deploymentTestRepository.Update(ctx, test)
}

func NewUpdateDeploymentTestUsecase(i *do.Injector) (UpdateDeploymentTestUsecase, error) {
	return &updateDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
