package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// ProjectQuery extends pagination with the featured filter.
type ProjectQuery struct {
	PageQuery
	Featured *bool
}

// ProjectRepository defines persistence for projects. Update is full-row,
// last-write-wins. Delete returns sql.ErrNoRows when the id does not exist so
// a repeated delete surfaces as not-found, never as success or a fault.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ProjectQuery) (*PageResult[model.Project], error)
	// Search runs a full-text query over title, description and technologies.
	Search(ctx context.Context, query string, pq PageQuery) (*PageResult[model.Project], error)
}
