package notify

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/rs/zerolog"
)

// Notifier announces created deployment tests. Best-effort: a failed
// creator lookup downgrades the notification, it never fails anything.
type Notifier struct {
	userRepository repository.UserRepository
	logger         zerolog.Logger
}

func NewNotifier(userRepository repository.UserRepository, logger zerolog.Logger) *Notifier {
	return &Notifier{userRepository: userRepository, logger: logger}
}

// HandleEvent is subscribed to the event bus.
func (n *Notifier) HandleEvent(ctx context.Context, event any) {
	created, ok := event.(*events.TestCreated)
	if !ok {
		return
	}
	n.notifyTestCreated(ctx, created.Test)
}

func (n *Notifier) notifyTestCreated(ctx context.Context, test *entity.DeploymentTest) {
	evt := n.logger.Info().
		Str("test_uuid", test.UUID).
		Str("test_type", string(test.TestType)).
		Str("project_id", test.ProjectID.String()).
		Int("traffic_percentage", test.TrafficPercentage)
	if test.CreatedByUserID != nil {
		if user, err := n.userRepository.GetByID(ctx, test.WorkspaceID, *test.CreatedByUserID); err == nil {
			evt = evt.Str("created_by_email", user.Email)
		} else {
			n.logger.Debug().Err(err).Msg("could not resolve creator for notification")
		}
	}
	evt.Msg("deployment test created")
}
