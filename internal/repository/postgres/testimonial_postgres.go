package postgres

import (
	"context"
	"database/sql"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// TestimonialPostgres is a PostgreSQL implementation of
// repository.TestimonialRepository.
type TestimonialPostgres struct {
	db *sql.DB
}

// NewTestimonialPostgres creates a new TestimonialPostgres repository.
func NewTestimonialPostgres(db *sql.DB) *TestimonialPostgres {
	return &TestimonialPostgres{db: db}
}

var _ repository.TestimonialRepository = (*TestimonialPostgres)(nil)

const testimonialColumns = `id, name, position, company, content, image_url, featured, sort_order, created_at`

func scanTestimonial(row rowScanner) (*model.Testimonial, error) {
	var tm model.Testimonial
	if err := row.Scan(
		&tm.ID, &tm.Name, &tm.Position, &tm.Company, &tm.Content,
		&tm.ImageURL, &tm.Featured, &tm.Order, &tm.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tm, nil
}

// Create inserts a new testimonial row.
func (r *TestimonialPostgres) Create(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		INSERT INTO testimonials (name, position, company, content, image_url, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.db.QueryRowContext(ctx, q,
		tm.Name, tm.Position, tm.Company, tm.Content, tm.ImageURL, tm.Featured, tm.Order,
	))
}

// FindByID fetches a single testimonial by its id.
func (r *TestimonialPostgres) FindByID(ctx context.Context, id string) (*model.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`
	return scanTestimonial(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites the full row; sql.ErrNoRows when the id does not exist.
func (r *TestimonialPostgres) Update(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		UPDATE testimonials
		SET name = $2, position = $3, company = $4, content = $5,
		    image_url = $6, featured = $7, sort_order = $8
		WHERE id = $1
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.db.QueryRowContext(ctx, q,
		tm.ID, tm.Name, tm.Position, tm.Company, tm.Content, tm.ImageURL, tm.Featured, tm.Order,
	))
}

// Delete removes a testimonial by id; sql.ErrNoRows when nothing was deleted.
func (r *TestimonialPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM testimonials WHERE id = $1`
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

// List returns every testimonial by sort order, newest first within ties.
func (r *TestimonialPostgres) List(ctx context.Context) ([]model.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY sort_order ASC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Testimonial, 0)
	for rows.Next() {
		tm, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *tm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
