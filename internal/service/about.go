package service

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// AboutService defines the use cases for the about-page document. Same
// blank-on-empty contract as ProfileService.
type AboutService interface {
	Get(ctx context.Context) (*model.About, error)
	Update(ctx context.Context, a *model.About) (*model.About, error)
}

type aboutService struct {
	repo repository.AboutRepository
}

// NewAboutService constructs a new AboutService.
func NewAboutService(repo repository.AboutRepository) AboutService {
	return &aboutService{repo: repo}
}

func (s *aboutService) Get(ctx context.Context) (*model.About, error) {
	a, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.About{
				Interests:  []string{},
				Experience: []model.Experience{},
				Education:  []model.Education{},
			}, nil
		}
		return nil, err
	}
	return a, nil
}

func (s *aboutService) Update(ctx context.Context, a *model.About) (*model.About, error) {
	return s.repo.Upsert(ctx, a)
}
