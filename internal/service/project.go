package service

import (
	"context"
	"strings"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// ProjectListResult is the service-level DTO for paginated projects.
type ProjectListResult struct {
	Items []model.Project
	Total int
}

// ProjectService defines the use cases for portfolio projects.
type ProjectService interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, id string, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id string) error

	// List returns projects, optionally filtered to featured ones.
	List(ctx context.Context, limit, offset int, featured *bool) (*ProjectListResult, error)

	// Search runs a full-text query over title, description and technologies.
	Search(ctx context.Context, query string, limit, offset int) (*ProjectListResult, error)
}

type projectService struct {
	repo repository.ProjectRepository
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	return s.repo.Create(ctx, p)
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *projectService) Update(ctx context.Context, id string, p *model.Project) (*model.Project, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *projectService) List(ctx context.Context, limit, offset int, featured *bool) (*ProjectListResult, error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.List(ctx, repository.ProjectQuery{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Featured:  featured,
	})
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *projectService) Search(ctx context.Context, query string, limit, offset int) (*ProjectListResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.New(400, "Search query is required")
	}
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.Search(ctx, query, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Items: res.Items, Total: res.Total}, nil
}
