package ports

import (
	"context"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

// AddDetailInput is the payload for creating a birth detail record. UserID
// is the authenticated caller's identifier supplied by the access gate.
type AddDetailInput struct {
	Age          int
	YearOfBirth  int
	PlaceOfBirth string
	UserID       string
}

type DetailService interface {
	Add(ctx context.Context, input AddDetailInput) (*domain.BirthDetail, error)
	List(ctx context.Context) ([]*domain.BirthDetail, error)
	Update(ctx context.Context, id string, input UpdateDetailInput) (*domain.BirthDetail, error)
	Delete(ctx context.Context, id string) (*domain.BirthDetail, error)
}
