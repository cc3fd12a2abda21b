package postgres

import (
	"context"
	"database/sql"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// SkillPostgres is a PostgreSQL implementation of repository.SkillRepository.
type SkillPostgres struct {
	db *sql.DB
}

// NewSkillPostgres creates a new SkillPostgres repository.
func NewSkillPostgres(db *sql.DB) *SkillPostgres {
	return &SkillPostgres{db: db}
}

var _ repository.SkillRepository = (*SkillPostgres)(nil)

const skillColumns = `id, name, category, proficiency, sort_order, created_at`

func scanSkill(row rowScanner) (*model.Skill, error) {
	var s model.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Order, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new skill row.
func (r *SkillPostgres) Create(ctx context.Context, s *model.Skill) (*model.Skill, error) {
	const q = `
		INSERT INTO skills (name, category, proficiency, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + skillColumns
	return scanSkill(r.db.QueryRowContext(ctx, q, s.Name, s.Category, s.Proficiency, s.Order))
}

// FindByID fetches a single skill by its id.
func (r *SkillPostgres) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	const q = `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`
	return scanSkill(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites the full row; sql.ErrNoRows when the id does not exist.
func (r *SkillPostgres) Update(ctx context.Context, s *model.Skill) (*model.Skill, error) {
	const q = `
		UPDATE skills
		SET name = $2, category = $3, proficiency = $4, sort_order = $5
		WHERE id = $1
		RETURNING ` + skillColumns
	return scanSkill(r.db.QueryRowContext(ctx, q, s.ID, s.Name, s.Category, s.Proficiency, s.Order))
}

// Delete removes a skill by id; sql.ErrNoRows when nothing was deleted.
func (r *SkillPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM skills WHERE id = $1`
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

// List returns every skill grouped by category, then sort order.
func (r *SkillPostgres) List(ctx context.Context) ([]model.Skill, error) {
	const q = `SELECT ` + skillColumns + ` FROM skills ORDER BY category ASC, sort_order ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
