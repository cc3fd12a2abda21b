package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}).
			AddRow("test-id", "Admin", "admin@example.com", "$2a$10$hash", "admin", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("admin@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "admin@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "admin@example.com", u.Email)
		assert.Equal(t, "$2a$10$hash", u.Password)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, u)
	})
}

func TestUserPostgres_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password = ?").
			WithArgs("test-id", "$2a$10$newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePassword(ctx, "test-id", "$2a$10$newhash"))
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password = ?").
			WithArgs("missing", "$2a$10$newhash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePassword(ctx, "missing", "$2a$10$newhash")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}
