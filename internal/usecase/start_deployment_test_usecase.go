package usecase

import (
	"context"
	"time"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type StartDeploymentTestUsecase interface {
	Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error)
}

type startDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
	guard                    ActiveTestGuard
}

// Execute moves the test to running. Starting an already-running test
// is a no-op success. A/B starts re-run the guard against the test
// itself; shadow tests are only checked at creation.
func (s *startDeploymentTestUsecaseImpl) Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error) {
	test, err := s.deploymentTestRepository.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if test.TestType == entity.TestTypeAB {
		if err := s.guard.CheckActive(ctx, workspaceID, test.ProjectID, test.TestType, &test.ID); err != nil {
			return nil, err
		}
	}
	test.Status = entity.TestStatusRunning
	if test.StartedAt == nil {
		test.StartedAt = lo.ToPtr(time.Now())
	}
	return s.deploymentTestRepository.Update(ctx, test)
}

func NewStartDeploymentTestUsecase(i *do.Injector) (StartDeploymentTestUsecase, error) {
	return &startDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
		guard:                    do.MustInvoke[ActiveTestGuard](i),
	}, nil
}
