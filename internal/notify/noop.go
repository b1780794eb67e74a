package notify

import "context"

// Noop discards all events. Used when no broadcast channel is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
