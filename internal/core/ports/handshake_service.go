package ports

import (
	"context"

	"github.com/pickit/print-system/internal/core/domain"
)

// HandshakeView is the customer-facing snapshot of the pairing flow.
type HandshakeView struct {
	State    domain.ScanState `json:"state"`
	ShopID   string           `json:"shop_id,omitempty"`
	ShopName string           `json:"shop_name,omitempty"`
}

// HandshakeService drives the one-time pairing between a customer session
// and a shop. Decoded frames arrive as raw text; the first candidate
// matching the shop identifier grammar wins, all others are ignored.
type HandshakeService interface {
	// Begin moves the flow from idle to awaiting_permission.
	Begin(ctx context.Context, customerID string) (*HandshakeView, error)
	// Permission records the camera permission outcome: granted moves to
	// scanning, denied to the re-entrant denied state.
	Permission(ctx context.Context, customerID string, granted bool) (*HandshakeView, error)
	// Frame feeds one decoded candidate string. A non-matching frame
	// leaves the flow in scanning and is not an error.
	Frame(ctx context.Context, customerID, raw string) (*HandshakeView, error)
	// State returns the current flow snapshot, including a binding
	// restored from the session store after a restart.
	State(ctx context.Context, customerID string) (*HandshakeView, error)
	// Unbind clears the shop association and discards any non-terminal
	// job tied to the previous shop.
	Unbind(ctx context.Context, customerID string) error
}
