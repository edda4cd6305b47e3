package usecase

import (
	"context"
	"errors"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/prompthost/prompthost/internal/routing"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type ResolveRoutingInput struct {
	WorkspaceID      entity.ID
	ProjectID        entity.ID
	Commit           *entity.Commit
	Source           entity.RunSource
	CustomIdentifier *string
}

type ResolveRoutingOutput struct {
	ABTest *entity.DeploymentTest
	Commit *entity.Commit
	Source entity.RunSource
}

// ResolveRoutingUsecase decides which commit a document-run request
// should actually execute. Read-only and side-effect-free; called on
// every run request.
type ResolveRoutingUsecase interface {
	Execute(ctx context.Context, input *ResolveRoutingInput) (*ResolveRoutingOutput, error)
}

type resolveRoutingUsecaseImpl struct {
	deploymentTestRepository repository.DeploymentTestRepository
	commitRepository         repository.CommitRepository
	router                   *routing.Router
}

func (r *resolveRoutingUsecaseImpl) Execute(ctx context.Context, input *ResolveRoutingInput) (*ResolveRoutingOutput, error) {
	passthrough := &ResolveRoutingOutput{Commit: input.Commit, Source: input.Source}

	active, err := r.deploymentTestRepository.ListActiveByProject(ctx, input.WorkspaceID, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return passthrough, nil
	}

	head, err := r.commitRepository.GetHeadByProject(ctx, input.WorkspaceID, input.ProjectID)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}
	isHeadCommit := head != nil && head.ID == input.Commit.ID

	abTest, ok := lo.Find(active, func(t *entity.DeploymentTest) bool {
		return t.TestType == entity.TestTypeAB &&
			(isHeadCommit || t.ChallengerCommitID == input.Commit.ID)
	})
	if !ok {
		return passthrough, nil
	}
	// Should not happen given the create-time invariant, but without a
	// head commit there is no baseline to route to.
	if head == nil {
		passthrough.ABTest = abTest
		return passthrough, nil
	}

	commitIDToUse := head.ID
	source := input.Source
	if r.router.Route(abTest, input.CustomIdentifier) == routing.DecisionChallenger {
		commitIDToUse = abTest.ChallengerCommitID
		source = entity.RunSourceABTestChallenger
	}

	if commitIDToUse == input.Commit.ID {
		return &ResolveRoutingOutput{ABTest: abTest, Commit: input.Commit, Source: source}, nil
	}
	effective, err := r.commitRepository.GetByID(ctx, input.WorkspaceID, commitIDToUse)
	if err != nil {
		return nil, err
	}
	return &ResolveRoutingOutput{ABTest: abTest, Commit: effective, Source: source}, nil
}

func NewResolveRoutingUsecase(i *do.Injector) (ResolveRoutingUsecase, error) {
	return &resolveRoutingUsecaseImpl{
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
		commitRepository:         do.MustInvoke[repository.CommitRepository](i),
		router:                   do.MustInvoke[*routing.Router](i),
	}, nil
}
