package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

type CreateDeploymentTestInput struct {
	WorkspaceID        entity.ID
	ProjectID          entity.ID
	ChallengerCommitID entity.ID
	TestType           entity.TestType
	TrafficPercentage  *int
	CreatedByUserID    *entity.ID
}

type CreateDeploymentTestUsecase interface {
	Execute(ctx context.Context, input *CreateDeploymentTestInput) (*entity.DeploymentTest, error)
}

type createDeploymentTestUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
	commitRepository         repository.CommitRepository
	guard                    ActiveTestGuard
	bus                      *events.Bus
}

// Execute validates the challenger against the project's current head
// commit, runs the guard, and inserts the test in pending. The created
// notification goes out asynchronously and cannot fail creation.
func (c *createDeploymentTestUsecaseImpl) Execute(ctx context.Context, input *CreateDeploymentTestInput) (*entity.DeploymentTest, error) {
	if !input.TestType.Valid() {
		return nil, fmt.Errorf("unknown test type %q: %w", input.TestType, entity.ErrInvalid)
	}

	head, err := c.commitRepository.GetHeadByProject(ctx, input.WorkspaceID, input.ProjectID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("project has no head commit: %w", entity.ErrNotFound)
		}
		return nil, err
	}
	if head.ID == input.ChallengerCommitID {
		return nil, fmt.Errorf("challenger commit equals the head commit: %w", entity.ErrInvalid)
	}

	percentage := input.TestType.DefaultTrafficPercentage()
	if input.TrafficPercentage != nil {
		percentage = *input.TrafficPercentage
	}
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("traffic percentage must be between 0 and 100: %w", entity.ErrInvalid)
	}

	if err := c.guard.CheckActive(ctx, input.WorkspaceID, input.ProjectID, input.TestType, nil); err != nil {
		return nil, err
	}

	created, err := c.deploymentTestRepository.Create(ctx, &entity.DeploymentTest{
		UUID:               uuid.NewString(),
		WorkspaceID:        input.WorkspaceID,
		ProjectID:          input.ProjectID,
		ChallengerCommitID: input.ChallengerCommitID,
		TestType:           input.TestType,
		TrafficPercentage:  percentage,
		Status:             entity.TestStatusPending,
		CreatedByUserID:    input.CreatedByUserID,
	})
	if err != nil {
		return nil, err
	}

	c.bus.PublishLater(ctx, &events.TestCreated{Test: created})
	return created, nil
}

func NewCreateDeploymentTestUsecase(i *do.Injector) (CreateDeploymentTestUsecase, error) {
	return &createDeploymentTestUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
		commitRepository:         do.MustInvoke[repository.CommitRepository](i),
		guard:                    do.MustInvoke[ActiveTestGuard](i),
		bus:                      do.MustInvoke[*events.Bus](i),
	}, nil
}
