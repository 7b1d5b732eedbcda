package ports

import (
	"context"

	"github.com/pickit/print-system/internal/core/domain"
)

// RegisterInput carries a new account plus its session profile.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
	Profile  domain.UserProfile
}

type AuthService interface {
	// Register creates the account. An operator registration also creates
	// the shop record with a freshly generated identifier.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
