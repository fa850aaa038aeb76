package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
)

// ListCache abstracts the Redis-backed cache of the full detail listing.
type ListCache interface {
	Get(ctx context.Context) ([]*domain.BirthDetail, bool, error)
	Set(ctx context.Context, details []*domain.BirthDetail) error
	Invalidate(ctx context.Context) error
}

// DetailService implements the gated CRUD operations on birth details.
//
// Mutations require only that the caller presented a valid token; the
// record's UserID is attached on create but never compared against the
// caller on update or delete. That gap is intentional source behaviour.
type DetailService struct {
	repo  ports.DetailRepository
	cache ListCache
	log   zerolog.Logger
}

func NewDetailService(repo ports.DetailRepository, cache ListCache, log zerolog.Logger) *DetailService {
	return &DetailService{repo: repo, cache: cache, log: log}
}

func (s *DetailService) Add(ctx context.Context, input ports.AddDetailInput) (*domain.BirthDetail, error) {
	now := time.Now().UTC()
	detail := &domain.BirthDetail{
		Age:          input.Age,
		YearOfBirth:  input.YearOfBirth,
		PlaceOfBirth: input.PlaceOfBirth,
		UserID:       input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, detail)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("detail_id", created.ID).Str("user_id", input.UserID).Msg("detail added")
	return created, nil
}

// List serves from the cache when possible. Cache errors are logged and
// bypassed; they never fail the request.
func (s *DetailService) List(ctx context.Context) ([]*domain.BirthDetail, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("detail cache read failed, falling back to store")
	} else if ok {
		return cached, nil
	}

	details, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, details); err != nil {
		s.log.Warn().Err(err).Msg("detail cache write failed")
	}
	return details, nil
}

func (s *DetailService) Update(ctx context.Context, id string, input ports.UpdateDetailInput) (*domain.BirthDetail, error) {
	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("detail_id", id).Msg("detail updated")
	return updated, nil
}

func (s *DetailService) Delete(ctx context.Context, id string) (*domain.BirthDetail, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("detail_id", id).Msg("detail deleted")
	return deleted, nil
}

func (s *DetailService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("detail cache invalidation failed")
	}
}
