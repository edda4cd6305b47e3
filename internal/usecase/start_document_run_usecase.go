package usecase

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/execution"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type StartDocumentRunInput struct {
	WorkspaceID      entity.ID
	ProjectID        entity.ID
	DocumentID       entity.ID
	// CommitID is optional; the project's head commit is used when empty.
	CommitID         entity.ID
	Parameters       map[string]any
	Tools            []string
	UserMessage      string
	Source           entity.RunSource
	CustomIdentifier *string
}

type StartDocumentRunOutput struct {
	Run    *execution.RunHandle
	ABTest *entity.DeploymentTest
	Commit *entity.Commit
	Source entity.RunSource
}

// StartDocumentRunUsecase is the request-time composition: resolve A/B
// routing, enqueue the routed run, and publish RunStarted carrying the
// project's active shadow test for background duplication.
type StartDocumentRunUsecase interface {
	Execute(ctx context.Context, input *StartDocumentRunInput) (*StartDocumentRunOutput, error)
}

type startDocumentRunUsecaseImpl struct {
	documentRepository       repository.DocumentRepository
	commitRepository         repository.CommitRepository
	deploymentTestRepository repository.DeploymentTestRepository
	resolveRouting           ResolveRoutingUsecase
	engine                   execution.Engine
	bus                      *events.Bus
}

func (s *startDocumentRunUsecaseImpl) Execute(ctx context.Context, input *StartDocumentRunInput) (*StartDocumentRunOutput, error) {
	document, err := s.documentRepository.GetByID(ctx, input.WorkspaceID, input.DocumentID)
	if err != nil {
		return nil, err
	}

	var commit *entity.Commit
	if input.CommitID != "" {
		commit, err = s.commitRepository.GetByID(ctx, input.WorkspaceID, input.CommitID)
	} else {
		commit, err = s.commitRepository.GetHeadByProject(ctx, input.WorkspaceID, input.ProjectID)
	}
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveRouting.Execute(ctx, &ResolveRoutingInput{
		WorkspaceID:      input.WorkspaceID,
		ProjectID:        input.ProjectID,
		Commit:           commit,
		Source:           input.Source,
		CustomIdentifier: input.CustomIdentifier,
	})
	if err != nil {
		return nil, err
	}

	handle, err := s.engine.EnqueueRun(ctx, &execution.EnqueueRunInput{
		WorkspaceID:      input.WorkspaceID,
		ProjectID:        input.ProjectID,
		DocumentID:       document.ID,
		CommitID:         resolved.Commit.ID,
		Parameters:       input.Parameters,
		CustomIdentifier: input.CustomIdentifier,
		Tools:            input.Tools,
		UserMessage:      input.UserMessage,
		Source:           resolved.Source,
	})
	if err != nil {
		return nil, err
	}

	// Attach the active shadow test, if any, so the dispatcher does not
	// have to query for it.
	active, err := s.deploymentTestRepository.ListActiveByProject(ctx, input.WorkspaceID, input.ProjectID)
	if err != nil {
		return nil, err
	}
	shadowTest, _ := lo.Find(active, func(t *entity.DeploymentTest) bool {
		return t.TestType == entity.TestTypeShadow
	})
	s.bus.PublishLater(ctx, &events.RunStarted{
		WorkspaceID:      input.WorkspaceID,
		ProjectID:        input.ProjectID,
		DocumentID:       document.ID,
		CommitID:         resolved.Commit.ID,
		Parameters:       input.Parameters,
		Tools:            input.Tools,
		UserMessage:      input.UserMessage,
		CustomIdentifier: input.CustomIdentifier,
		ActiveTest:       shadowTest,
	})

	return &StartDocumentRunOutput{
		Run:    handle,
		ABTest: resolved.ABTest,
		Commit: resolved.Commit,
		Source: resolved.Source,
	}, nil
}

func NewStartDocumentRunUsecase(i *do.Injector) (StartDocumentRunUsecase, error) {
	return &startDocumentRunUsecaseImpl{
		documentRepository:       do.MustInvoke[repository.DocumentRepository](i),
		commitRepository:         do.MustInvoke[repository.CommitRepository](i),
		deploymentTestRepository: do.MustInvoke[repository.DeploymentTestRepository](i),
		resolveRouting:           do.MustInvoke[ResolveRoutingUsecase](i),
		engine:                   do.MustInvoke[execution.Engine](i),
		bus:                      do.MustInvoke[*events.Bus](i),
	}, nil
}
