package service

import (
	"context"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// SkillService defines the use cases for skills. The collection is small, so
// List returns everything grouped by category.
type SkillService interface {
	Create(ctx context.Context, sk *model.Skill) (*model.Skill, error)
	Get(ctx context.Context, id string) (*model.Skill, error)
	Update(ctx context.Context, id string, sk *model.Skill) (*model.Skill, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Skill, error)
}

type skillService struct {
	repo repository.SkillRepository
}

// NewSkillService constructs a new SkillService.
func NewSkillService(repo repository.SkillRepository) SkillService {
	return &skillService{repo: repo}
}

func (s *skillService) Create(ctx context.Context, sk *model.Skill) (*model.Skill, error) {
	return s.repo.Create(ctx, sk)
}

func (s *skillService) Get(ctx context.Context, id string) (*model.Skill, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *skillService) Update(ctx context.Context, id string, sk *model.Skill) (*model.Skill, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	sk.ID = id
	return s.repo.Update(ctx, sk)
}

func (s *skillService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *skillService) List(ctx context.Context) ([]model.Skill, error) {
	return s.repo.List(ctx)
}
