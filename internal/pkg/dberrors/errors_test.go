package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "votes_register_number_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "votes_register_number_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert failed: %w", dup), "votes_register_number_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "students_pkey"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "votes_register_number_key"))
	assert.False(t, IsDuplicateConstraintError(nil, "votes_register_number_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "votes_register_number_fkey"}

	assert.True(t, IsForeignKeyViolation(fk, "votes_register_number_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "other_fkey"))

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "votes_register_number_fkey"}
	assert.False(t, IsForeignKeyViolation(dup, "votes_register_number_fkey"))
}
