package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// SkillRepository defines persistence for skills. List returns every skill
// ordered by category then sort order; the collection is small enough that
// pagination would be noise.
type SkillRepository interface {
	Create(ctx context.Context, s *model.Skill) (*model.Skill, error)
	FindByID(ctx context.Context, id string) (*model.Skill, error)
	Update(ctx context.Context, s *model.Skill) (*model.Skill, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Skill, error)
}
