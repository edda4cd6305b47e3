package execution

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/rs/zerolog"
)

// localEngine records queued runs in the relational store and logs
// them. Model execution itself is handled by workers outside this
// module.
type localEngine struct {
	runs   repository.RunRepository
	logger zerolog.Logger
}

func NewLocalEngine(runs repository.RunRepository, logger zerolog.Logger) Engine {
	return &localEngine{runs: runs, logger: logger}
}

func (e *localEngine) EnqueueRun(ctx context.Context, input *EnqueueRunInput) (*RunHandle, error) {
	params, err := json.Marshal(input.Parameters)
	if err != nil {
		return nil, err
	}
	run := &repository.Run{
		UUID:             uuid.NewString(),
		WorkspaceID:      input.WorkspaceID.Uint(),
		ProjectID:        input.ProjectID.Uint(),
		DocumentID:       input.DocumentID.Uint(),
		CommitID:         input.CommitID.Uint(),
		Source:           string(input.Source),
		Status:           "queued",
		Parameters:       string(params),
		Tools:            strings.Join(input.Tools, ","),
		UserMessage:      input.UserMessage,
		CustomIdentifier: input.CustomIdentifier,
		SimulateTools:    input.Simulation != nil && input.Simulation.SimulateToolResponses,
	}
	if err := e.runs.Create(ctx, run); err != nil {
		return nil, err
	}
	e.logger.Info().
		Str("run_uuid", run.UUID).
		Str("commit_id", input.CommitID.String()).
		Str("source", string(input.Source)).
		Bool("simulate_tools", run.SimulateTools).
		Msg("run enqueued")
	return &RunHandle{RunID: run.UUID}, nil
}
