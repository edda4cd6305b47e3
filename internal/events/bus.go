package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Handler func(ctx context.Context, event any)

// Bus is a minimal in-process publish-later bus. Handlers run on their
// own goroutine, detached from the publisher's cancellation, so a slow
// or failing subscriber can never delay the publishing request.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   zerolog.Logger
}

func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// PublishLater delivers the event asynchronously to every subscriber.
func (b *Bus) PublishLater(ctx context.Context, event any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error().Any("panic", r).Msg("event handler panicked")
			}
		}()
		for _, h := range handlers {
			h(ctx, event)
		}
	}()
}
