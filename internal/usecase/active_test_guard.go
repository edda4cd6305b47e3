package usecase

import (
	"context"
	"fmt"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
)

// ActiveTestGuard enforces the one-active-test-per-(project,type)
// invariant. Check-then-act: the query is the check, the caller does
// the act. A schema-level partial unique index backstops the race.
type ActiveTestGuard interface {
	CheckActive(ctx context.Context, workspaceID, projectID entity.ID, testType entity.TestType, excludeID *entity.ID) error
}

type activeTestGuardImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
}

func (g *activeTestGuardImpl) CheckActive(ctx context.Context, workspaceID, projectID entity.ID, testType entity.TestType, excludeID *entity.ID) error {
	active, err := g.deploymentTestRepository.ListActiveByProjectAndType(ctx, workspaceID, projectID, testType, excludeID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("only one active %s test is allowed per project: %w", testType, entity.ErrConflict)
	}
	return nil
}

func NewActiveTestGuard(i *do.Injector) (ActiveTestGuard, error) {
	return &activeTestGuardImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
	}, nil
}
