package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
}
