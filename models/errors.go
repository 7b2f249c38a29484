package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorKind separates data problems from connectivity problems.
type ErrorKind int

const (
	KindUnavailable ErrorKind = iota + 1
	KindConstraintViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindConstraintViolation:
		return "constraint violation"
	default:
		return "unknown"
	}
}

var (
	// ErrConstraintViolation matches store errors caused by invalid data,
	// such as a reference to a category that does not exist.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrUnavailable matches store errors caused by the database connection.
	ErrUnavailable = errors.New("store unavailable")
)

// StoreError is the only error type returned by the catalog repository.
type StoreError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrConstraintViolation:
		return e.Kind == KindConstraintViolation
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

func storeError(op string, err error) error {
	kind := KindUnavailable
	if isConstraintViolation(err) {
		kind = KindConstraintViolation
	}
	return &StoreError{Op: op, Kind: kind, Err: err}
}

// integrityViolationClass is the SQLSTATE class for constraint failures.
const integrityViolationClass = "23"

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == integrityViolationClass
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, integrityViolationClass)
	}

	// SQLite, e.g. "FOREIGN KEY constraint failed (787)"
	return strings.Contains(err.Error(), "constraint failed")
}
