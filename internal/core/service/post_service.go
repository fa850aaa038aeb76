package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
)

// PostService creates posts. Creation is unauthenticated on purpose.
type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

func (s *PostService) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	post := &domain.Post{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Msg("post created")
	return created, nil
}
