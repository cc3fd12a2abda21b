package postgres

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of
// repository.ProfileRepository. The table holds a single row; Upsert updates
// it in place or inserts the first one.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, name, title, bio, email, phone, resume_url, avatar_url, social, created_at, updated_at`

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p      model.Profile
		social []byte
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email, &p.Phone,
		&p.ResumeURL, &p.AvatarURL, &social, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(social, &p.Social); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get fetches the profile document, sql.ErrNoRows when none exists yet.
func (r *ProfilePostgres) Get(ctx context.Context) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC LIMIT 1`
	return scanProfile(r.db.QueryRowContext(ctx, q))
}

// Upsert updates the existing profile row or inserts the first one.
func (r *ProfilePostgres) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	social, err := marshalObjectJSONB(p.Social)
	if err != nil {
		return nil, err
	}

	const qUpdate = `
		UPDATE profiles
		SET name = $1, title = $2, bio = $3, email = $4, phone = $5,
		    resume_url = $6, avatar_url = $7, social = $8, updated_at = now()
		WHERE id = (SELECT id FROM profiles ORDER BY created_at ASC LIMIT 1)
		RETURNING ` + profileColumns
	updated, err := scanProfile(r.db.QueryRowContext(ctx, qUpdate,
		p.Name, p.Title, p.Bio, p.Email, p.Phone, p.ResumeURL, p.AvatarURL, social,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	const qInsert = `
		INSERT INTO profiles (name, title, bio, email, phone, resume_url, avatar_url, social)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRowContext(ctx, qInsert,
		p.Name, p.Title, p.Bio, p.Email, p.Phone, p.ResumeURL, p.AvatarURL, social,
	))
}
