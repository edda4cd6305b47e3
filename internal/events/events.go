package events

import "github.com/prompthost/prompthost/internal/entity"

// TestCreated is published after a deployment test row is inserted.
// Consumed by the notification subscriber; delivery is best-effort.
type TestCreated struct {
	Test *entity.DeploymentTest
}

// RunStarted is published when a document run has been enqueued.
// ActiveTest carries the project's active shadow test, resolved by the
// request-time logic; the shadow dispatcher never queries for it.
type RunStarted struct {
	WorkspaceID      entity.ID
	ProjectID        entity.ID
	DocumentID       entity.ID
	CommitID         entity.ID
	Parameters       map[string]any
	Tools            []string
	UserMessage      string
	CustomIdentifier *string
	ActiveTest       *entity.DeploymentTest
}
