package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"portfolio-api/internal/model"
)

func profileRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "title", "bio", "email", "phone",
		"resume_url", "avatar_url", "social", "created_at", "updated_at",
	}).AddRow(id, "Jane Doe", "Engineer", "bio", "jane@example.com", "",
		"", "", []byte(`{"github":"https://github.com/jane"}`), now, now)
}

func TestProfilePostgres_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)
	ctx := context.Background()

	p := &model.Profile{
		Name:  "Jane Doe",
		Title: "Engineer",
		Bio:   "bio",
		Email: "jane@example.com",
		Social: model.SocialLinks{
			Github: "https://github.com/jane",
		},
	}

	t.Run("updates existing row", func(t *testing.T) {
		mock.ExpectQuery("UPDATE profiles").
			WillReturnRows(profileRow("test-id"))

		got, err := repo.Upsert(ctx, p)

		assert.NoError(t, err)
		assert.Equal(t, "test-id", got.ID)
		assert.Equal(t, "https://github.com/jane", got.Social.Github)
	})

	t.Run("inserts first row when table is empty", func(t *testing.T) {
		mock.ExpectQuery("UPDATE profiles").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO profiles").
			WillReturnRows(profileRow("new-id"))

		got, err := repo.Upsert(ctx, p)

		assert.NoError(t, err)
		assert.Equal(t, "new-id", got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
