package postgres

import (
	"context"
	"database/sql"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of
// repository.ProjectRepository. Parameterized queries only, no business
// logic.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, title, description, technologies, image_url, github_url, live_url, featured, sort_order, created_at, updated_at`

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p    model.Project
		tech []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&tech,
		&p.ImageURL,
		&p.GithubURL,
		&p.LiveURL,
		&p.Featured,
		&p.Order,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(tech, &p.Technologies); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project row and returns the stored record.
func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	const q = `
		INSERT INTO projects (title, description, technologies, image_url, github_url, live_url, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns
	tech, err := marshalJSONB(p.Technologies)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, q,
		p.Title, p.Description, tech, p.ImageURL, p.GithubURL, p.LiveURL, p.Featured, p.Order,
	)
	return scanProject(row)
}

// FindByID fetches a single project by its id.
func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites the full row and bumps updated_at. Returns sql.ErrNoRows
// when the id does not exist.
func (r *ProjectPostgres) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	const q = `
		UPDATE projects
		SET title = $2, description = $3, technologies = $4, image_url = $5,
		    github_url = $6, live_url = $7, featured = $8, sort_order = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns
	tech, err := marshalJSONB(p.Technologies)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, q,
		p.ID, p.Title, p.Description, tech, p.ImageURL, p.GithubURL, p.LiveURL, p.Featured, p.Order,
	)
	return scanProject(row)
}

// Delete removes a project by id; sql.ErrNoRows when nothing was deleted.
func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns projects with the optional featured filter, ordered by sort
// order then recency, plus a total count for pagination.
func (r *ProjectPostgres) List(ctx context.Context, q repository.ProjectQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects WHERE ($1::boolean IS NULL OR featured = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, q.Featured).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1::boolean IS NULL OR featured = $1)
		ORDER BY sort_order ASC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, q.Featured, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Project]{Items: items, Total: total}, nil
}

// Search runs the full-text query matching the GIN index expression, ranked
// by relevance.
func (r *ProjectPostgres) Search(ctx context.Context, query string, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `
		SELECT COUNT(*) FROM projects
		WHERE to_tsvector('english', title || ' ' || description || ' ' || technologies::text)
		      @@ websearch_to_tsquery('english', $1)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, query).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE to_tsvector('english', title || ' ' || description || ' ' || technologies::text)
		      @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title || ' ' || description || ' ' || technologies::text),
		                 websearch_to_tsquery('english', $1)) DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, query, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Project]{Items: items, Total: total}, nil
}

func collectProjects(rows *sql.Rows) ([]model.Project, error) {
	items := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
