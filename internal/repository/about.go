package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// AboutRepository persists the single about-page document, same contract as
// the profile repository.
type AboutRepository interface {
	Get(ctx context.Context) (*model.About, error)
	Upsert(ctx context.Context, a *model.About) (*model.About, error)
}
