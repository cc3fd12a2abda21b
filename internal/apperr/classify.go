package apperr

import (
	"database/sql"
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation  = "23505"
	pgInvalidTextValue = "22P02"
)

// duplicateKeyDetail matches the postgres unique-violation detail line,
// e.g. `Key (email)=(admin@example.com) already exists.`
var duplicateKeyDetail = regexp.MustCompile(`Key \((.+?)\)=\((.+?)\)`)

// Classify converts any raw fault into the normalized variant. It is a pure
// function; rendering and logging happen elsewhere. First match wins:
// already-normalized errors, unique violations, malformed values, credential
// faults, upload/body-size faults, framework errors, missing rows, and
// finally the unclassified 500.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			field, value := "field", ""
			if m := duplicateKeyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
				field, value = m[1], m[2]
			} else if pgErr.ConstraintName != "" {
				field = pgErr.ConstraintName
			}
			return Duplicate(field, value).WithCause(err)
		case pgInvalidTextValue:
			return InvalidParam("value", pgErr.Message).WithCause(err)
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized("Your token has expired. Please log in again.").WithCause(err)
	}
	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims) {
		return Unauthorized("Invalid token. Please log in again.").WithCause(err)
	}

	if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
		return New(400, "File too large").WithCause(err)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return New(fiberErr.Code, fiberErr.Message).WithCause(err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("Resource").WithCause(err)
	}

	return &Error{
		Code:        500,
		Status:      StatusError,
		Message:     err.Error(),
		Operational: false,
		Err:         err,
	}
}
