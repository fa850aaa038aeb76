package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

type PostService interface {
	Create(ctx context.Context, title, content string) (*domain.Post, error)
}
