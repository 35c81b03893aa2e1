package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound covers both a missing row and an ownership mismatch. The two
// are deliberately indistinguishable to the caller so that probing for
// other users' resources leaks nothing.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden is only used where the resource's existence is already
// public (shared templates).
var ErrForbidden = errors.New("permission denied")

// ValidationError reports bad input shape or a missing required field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a state-machine precondition violation, such as
// deleting a project that still has publications.
type ConflictError struct {
	Msg              string
	HasPublications  bool
	PublicationCount int64
}

func (e *ConflictError) Error() string { return e.Msg }

// ConstraintError surfaces a referential-integrity violation from storage,
// naming the offending table and constraint.
type ConstraintError struct {
	Table      string
	Constraint string
	err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %q violated on table %q", e.Constraint, e.Table)
}

func (e *ConstraintError) Unwrap() error { return e.err }

const pgForeignKeyViolation = "23503"

// wrapStorageErr normalizes gorm/postgres errors into the service taxonomy.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pg *pgconn.PgError
	if errors.As(err, &pg) && pg.Code == pgForeignKeyViolation {
		return &ConstraintError{Table: pg.TableName, Constraint: pg.ConstraintName, err: err}
	}
	return err
}
