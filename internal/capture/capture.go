package capture

import (
	"context"

	"github.com/rs/zerolog"
)

// Sink receives errors from fire-and-forget paths that must never
// propagate to the caller (shadow dispatch, notification lookups).
type Sink interface {
	CaptureException(ctx context.Context, err error)
}

type logSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) Sink {
	return &logSink{logger: logger}
}

func (s *logSink) CaptureException(ctx context.Context, err error) {
	s.logger.Error().Ctx(ctx).Err(err).Msg("captured exception")
}
