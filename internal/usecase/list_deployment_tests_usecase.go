package usecase

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

type ListDeploymentTestsUsecase interface {
	Execute(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error)
}

type listDeploymentTestsUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

func (l *listDeploymentTestsUsecaseImpl) Execute(ctx context.Context, workspaceID, projectID entity.ID) ([]*entity.DeploymentTest, error) {
	return l.deploymentTestRepository.ListByProject(ctx, workspaceID, projectID)
}

func NewListDeploymentTestsUsecase(i *do.Injector) (ListDeploymentTestsUsecase, error) {
	return &listDeploymentTestsUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
