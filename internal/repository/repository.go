// Package repository provides PostgreSQL persistence implementations for
// users, properties, and recommendations.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("repository: duplicate")

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"
