package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

// UpdateDetailInput carries the full replacement payload for an update; all
// three fields are written unconditionally.
type UpdateDetailInput struct {
	Age          int
	YearOfBirth  int
	PlaceOfBirth string
}

// DetailRepository defines persistence operations for birth detail records.
// Update and Delete return domain.ErrDetailNotFound when id does not match
// an existing record.
type DetailRepository interface {
	Create(ctx context.Context, detail *domain.BirthDetail) (*domain.BirthDetail, error)
	List(ctx context.Context) ([]*domain.BirthDetail, error)
	Update(ctx context.Context, id string, input UpdateDetailInput) (*domain.BirthDetail, error)
	Delete(ctx context.Context, id string) (*domain.BirthDetail, error)
}
