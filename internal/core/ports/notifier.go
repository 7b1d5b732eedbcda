package ports

import "context"

// ReadyNotification is emitted exactly once per transition into ready.
type ReadyNotification struct {
	JobID      string
	FileName   string
	ShopID     string
	CustomerID string
}

// Notifier delivers one user-facing effect of a transition. Delivery is
// best effort: an error is logged by the dispatcher and never propagated
// back into the lifecycle machine.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n ReadyNotification) error
}

// EffectDispatcher receives committed transitions and fans their effects
// out asynchronously. Enqueueing never blocks the state commit.
type EffectDispatcher interface {
	JobReady(n ReadyNotification)
}
