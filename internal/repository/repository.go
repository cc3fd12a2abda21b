package repository

// Package repository contains data access layer abstractions. The PostgreSQL
// implementations live in the postgres subpackage; testify mocks in mocks.
// Repositories return raw driver errors (sql.ErrNoRows, *pgconn.PgError)
// upward so the error normalizer can classify duplicate keys and missing rows.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
