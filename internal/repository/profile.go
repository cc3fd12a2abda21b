package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// ProfileRepository persists the single profile document. Get returns
// sql.ErrNoRows when none exists yet; Upsert inserts or overwrites it.
type ProfileRepository interface {
	Get(ctx context.Context) (*model.Profile, error)
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
}
