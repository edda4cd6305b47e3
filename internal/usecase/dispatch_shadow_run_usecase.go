package usecase

import (
	"context"
	"fmt"

	"github.com/prompthost/prompthost/internal/capture"
	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/execution"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/prompthost/prompthost/internal/routing"
	"github.com/samber/do"
)

// DispatchShadowRunUsecase duplicates a started run against the shadow
// challenger. Fire-and-forget: every internal failure is captured and
// swallowed, nothing ever reaches the primary request.
type DispatchShadowRunUsecase interface {
	Execute(ctx context.Context, event *events.RunStarted)
}

type dispatchShadowRunUsecaseImpl struct {
	commitRepository  repository.CommitRepository
	projectRepository repository.ProjectRepository
	router            *routing.Router
	engine            execution.Engine
	sink              capture.Sink
}

func (d *dispatchShadowRunUsecaseImpl) Execute(ctx context.Context, event *events.RunStarted) {
	test := event.ActiveTest
	if test == nil || test.TestType != entity.TestTypeShadow {
		return
	}
	// The percentage is the probability of duplicating this request;
	// shadow tests have no baseline population to compare against.
	if d.router.Route(test, event.CustomIdentifier) != routing.DecisionChallenger {
		return
	}

	challenger, err := d.commitRepository.GetByID(ctx, test.WorkspaceID, test.ChallengerCommitID)
	if err != nil {
		d.sink.CaptureException(ctx, fmt.Errorf("shadow dispatch: resolve challenger commit %s: %w", test.ChallengerCommitID, err))
		return
	}
	project, err := d.projectRepository.GetByID(ctx, test.WorkspaceID, test.ProjectID)
	if err != nil {
		d.sink.CaptureException(ctx, fmt.Errorf("shadow dispatch: resolve project %s: %w", test.ProjectID, err))
		return
	}

	_, err = d.engine.EnqueueRun(ctx, &execution.EnqueueRunInput{
		WorkspaceID:      test.WorkspaceID,
		ProjectID:        project.ID,
		DocumentID:       event.DocumentID,
		CommitID:         challenger.ID,
		Parameters:       event.Parameters,
		CustomIdentifier: event.CustomIdentifier,
		Tools:            event.Tools,
		UserMessage:      event.UserMessage,
		Source:           entity.RunSourceShadowTest,
		Simulation:       &execution.SimulationSettings{SimulateToolResponses: true},
	})
	if err != nil {
		d.sink.CaptureException(ctx, fmt.Errorf("shadow dispatch: enqueue challenger run: %w", err))
	}
}

func NewDispatchShadowRunUsecase(i *do.Injector) (DispatchShadowRunUsecase, error) {
	return &dispatchShadowRunUsecaseImpl{
		commitRepository:  do.MustInvoke[repository.CommitRepository](i),
		projectRepository: do.MustInvoke[repository.ProjectRepository](i),
		router:            do.MustInvoke[*routing.Router](i),
		engine:            do.MustInvoke[execution.Engine](i),
		sink:              do.MustInvoke[capture.Sink](i),
	}, nil
}
