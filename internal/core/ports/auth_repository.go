package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
type AuthRepository interface {
	// FindByEmail returns the user registered under email, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Returns domain.ErrUserExists when the
	// email uniqueness constraint is violated.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
