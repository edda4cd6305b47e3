package execution

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
)

// SimulationSettings tells the engine to fake external effects. Shadow
// duplicates run with SimulateToolResponses so side effects are not
// executed twice.
type SimulationSettings struct {
	SimulateToolResponses bool
}

type EnqueueRunInput struct {
	WorkspaceID      entity.ID
	ProjectID        entity.ID
	DocumentID       entity.ID
	CommitID         entity.ID
	Parameters       map[string]any
	CustomIdentifier *string
	Tools            []string
	UserMessage      string
	Source           entity.RunSource
	Simulation       *SimulationSettings
}

type RunHandle struct {
	RunID string `json:"run_id"`
}

// Engine accepts a document+commit run and schedules model execution.
type Engine interface {
	EnqueueRun(ctx context.Context, input *EnqueueRunInput) (*RunHandle, error)
}
