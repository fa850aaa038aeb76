package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

type AuthService interface {
	// Signup registers a new account. No token is issued; login is a
	// separate step.
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token. Unknown
	// email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}
