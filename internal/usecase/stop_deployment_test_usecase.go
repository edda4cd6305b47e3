package usecase

import (
	"context"
	"time"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type StopDeploymentTestUsecase interface {
	Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error)
}

type stopDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

// Execute completes the test. Terminal and idempotent: stopping an
// already-completed test succeeds and keeps its original end time.
func (s *stopDeploymentTestUsecaseImpl) Execute(ctx context.Context, workspaceID, id entity.ID) (*entity.DeploymentTest, error) {
	test, err := s.deploymentTestRepository.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	test.Status = entity.TestStatusCompleted
	if test.EndedAt == nil {
		test.EndedAt = lo.ToPtr(time.Now())
	}
	return s.deploymentTestRepository.Update(ctx, test)
}

func NewStopDeploymentTestUsecase(i *do.Injector) (StopDeploymentTestUsecase, error) {
	return &stopDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
