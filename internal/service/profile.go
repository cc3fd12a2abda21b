package service

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// ProfileService defines the use cases for the single profile document. Get
// never 404s; an empty table reads as a blank profile so the public site can
// render before the owner fills anything in.
type ProfileService interface {
	Get(ctx context.Context) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// SetAvatarURL and SetResumeURL patch a single upload-backed field,
	// preserving the rest of the document.
	SetAvatarURL(ctx context.Context, url string) (*model.Profile, error)
	SetResumeURL(ctx context.Context, url string) (*model.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context) (*model.Profile, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.Profile{}, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	return s.repo.Upsert(ctx, p)
}

func (s *profileService) SetAvatarURL(ctx context.Context, url string) (*model.Profile, error) {
	return s.patch(ctx, func(p *model.Profile) { p.AvatarURL = url })
}

func (s *profileService) SetResumeURL(ctx context.Context, url string) (*model.Profile, error) {
	return s.patch(ctx, func(p *model.Profile) { p.ResumeURL = url })
}

func (s *profileService) patch(ctx context.Context, apply func(*model.Profile)) (*model.Profile, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	apply(current)
	return s.repo.Upsert(ctx, current)
}
