package ports

import (
	"context"

	"github.com/pickit/print-system/internal/core/domain"
)

// SessionStore is the key-value persistence for per-session state: role,
// profile, and the shop binding. An absent key means "not yet set" and is
// reported as a zero value, never as an error.
type SessionStore interface {
	SaveRole(ctx context.Context, userID, role string) error
	Role(ctx context.Context, userID string) (string, error)

	SaveProfile(ctx context.Context, userID string, profile domain.UserProfile) error
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)

	SaveBinding(ctx context.Context, userID, shopID string) error
	Binding(ctx context.Context, userID string) (string, error)
	ClearBinding(ctx context.Context, userID string) error
}
