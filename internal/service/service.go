// Package service holds the use-case layer. Services validate identifiers,
// orchestrate repositories and uploads, and otherwise pass driver errors
// upward untouched so the error normalizer can classify them.
package service

import (
	"github.com/google/uuid"

	"portfolio-api/internal/apperr"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// validateID rejects identifiers that can never match a row, mirroring the
// malformed-id classification without a database round trip.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.InvalidParam("id", id)
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
