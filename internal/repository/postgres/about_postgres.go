package postgres

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// AboutPostgres is a PostgreSQL implementation of repository.AboutRepository.
// Single-row table, same upsert contract as ProfilePostgres.
type AboutPostgres struct {
	db *sql.DB
}

// NewAboutPostgres creates a new AboutPostgres repository.
func NewAboutPostgres(db *sql.DB) *AboutPostgres {
	return &AboutPostgres{db: db}
}

var _ repository.AboutRepository = (*AboutPostgres)(nil)

const aboutColumns = `id, about, location, years_of_experience, interests, experience, education, updated_at`

func scanAbout(row rowScanner) (*model.About, error) {
	var (
		a                   model.About
		interests, exp, edu []byte
	)
	if err := row.Scan(
		&a.ID, &a.About, &a.Location, &a.YearsOfExperience,
		&interests, &exp, &edu, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(interests, &a.Interests); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(exp, &a.Experience); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(edu, &a.Education); err != nil {
		return nil, err
	}
	return &a, nil
}

// Get fetches the about document, sql.ErrNoRows when none exists yet.
func (r *AboutPostgres) Get(ctx context.Context) (*model.About, error) {
	const q = `SELECT ` + aboutColumns + ` FROM about ORDER BY updated_at ASC LIMIT 1`
	return scanAbout(r.db.QueryRowContext(ctx, q))
}

// Upsert updates the existing about row or inserts the first one.
func (r *AboutPostgres) Upsert(ctx context.Context, a *model.About) (*model.About, error) {
	interests, err := marshalJSONB(a.Interests)
	if err != nil {
		return nil, err
	}
	exp, err := marshalJSONB(a.Experience)
	if err != nil {
		return nil, err
	}
	edu, err := marshalJSONB(a.Education)
	if err != nil {
		return nil, err
	}

	const qUpdate = `
		UPDATE about
		SET about = $1, location = $2, years_of_experience = $3,
		    interests = $4, experience = $5, education = $6, updated_at = now()
		WHERE id = (SELECT id FROM about LIMIT 1)
		RETURNING ` + aboutColumns
	updated, err := scanAbout(r.db.QueryRowContext(ctx, qUpdate,
		a.About, a.Location, a.YearsOfExperience, interests, exp, edu,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	const qInsert = `
		INSERT INTO about (about, location, years_of_experience, interests, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + aboutColumns
	return scanAbout(r.db.QueryRowContext(ctx, qInsert,
		a.About, a.Location, a.YearsOfExperience, interests, exp, edu,
	))
}
