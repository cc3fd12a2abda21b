package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPassesThroughNormalizedErrors(t *testing.T) {
	in := Validation([]FieldError{{Field: "title", Message: "Project title is required"}})
	out := Classify(in)

	assert.Same(t, in, out)
	assert.Equal(t, 400, out.Code)
	assert.Equal(t, StatusFail, out.Status)
	assert.Equal(t, "title", out.Fields[0].Field)
}

func TestClassifyDuplicateKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Detail:         "Key (email)=(admin@example.com) already exists.",
		ConstraintName: "users_email_key",
	}
	out := Classify(fmt.Errorf("insert user: %w", pgErr))

	assert.Equal(t, 400, out.Code)
	assert.Equal(t, StatusFail, out.Status)
	assert.Equal(t, "Duplicate field value: email already exists with value admin@example.com", out.Message)
	assert.Equal(t, "email", out.Fields[0].Field)
	assert.True(t, out.Operational)
}

func TestClassifyDuplicateKeyWithoutDetail(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	out := Classify(pgErr)

	assert.Equal(t, 400, out.Code)
	assert.Contains(t, out.Message, "users_email_key")
}

func TestClassifyInvalidTextRepresentation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}
	out := Classify(pgErr)

	assert.Equal(t, 400, out.Code)
	assert.Contains(t, out.Message, "Invalid")
}

func TestClassifyTokenErrors(t *testing.T) {
	expired := Classify(fmt.Errorf("parse: %w", jwt.ErrTokenExpired))
	assert.Equal(t, 401, expired.Code)
	assert.Equal(t, "Your token has expired. Please log in again.", expired.Message)

	invalid := Classify(jwt.ErrTokenSignatureInvalid)
	assert.Equal(t, 401, invalid.Code)
	assert.Equal(t, "Invalid token. Please log in again.", invalid.Message)

	malformed := Classify(jwt.ErrTokenMalformed)
	assert.Equal(t, "Invalid token. Please log in again.", malformed.Message)

	// Expired and invalid must stay distinguishable for client UX.
	assert.NotEqual(t, expired.Message, invalid.Message)
}

func TestClassifyBodyTooLarge(t *testing.T) {
	out := Classify(fiber.ErrRequestEntityTooLarge)

	assert.Equal(t, 400, out.Code)
	assert.Equal(t, "File too large", out.Message)
}

func TestClassifyFiberError(t *testing.T) {
	out := Classify(fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, 405, out.Code)
	assert.Equal(t, StatusFail, out.Status)
	assert.True(t, out.Operational)
}

func TestClassifyNoRows(t *testing.T) {
	out := Classify(fmt.Errorf("find project: %w", sql.ErrNoRows))

	assert.Equal(t, 404, out.Code)
	assert.Equal(t, StatusFail, out.Status)
}

func TestClassifyUnknownFault(t *testing.T) {
	out := Classify(errors.New("pq: connection reset"))

	assert.Equal(t, 500, out.Code)
	assert.Equal(t, StatusError, out.Status)
	assert.False(t, out.Operational)
}

func TestRouteNotFoundShape(t *testing.T) {
	e := RouteNotFound()

	assert.Equal(t, 404, e.Code)
	assert.Equal(t, StatusError, e.Status)
	assert.Equal(t, "Route not found", e.Message)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := New(400, "bad").WithCause(cause)

	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "boom")
}
