package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStoreErrorClassification(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedKind ErrorKind
	}{
		{name: "gorm foreign key", err: fmt.Errorf("create: %w", gorm.ErrForeignKeyViolated), expectedKind: KindConstraintViolation},
		{name: "gorm duplicate key", err: gorm.ErrDuplicatedKey, expectedKind: KindConstraintViolation},
		{name: "pq foreign key", err: &pq.Error{Code: "23503"}, expectedKind: KindConstraintViolation},
		{name: "pq check", err: &pq.Error{Code: "23514"}, expectedKind: KindConstraintViolation},
		{name: "pq connection failure", err: &pq.Error{Code: "08006"}, expectedKind: KindUnavailable},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, expectedKind: KindConstraintViolation},
		{name: "pgx admin shutdown", err: &pgconn.PgError{Code: "57P01"}, expectedKind: KindUnavailable},
		{name: "sqlite foreign key", err: errors.New("FOREIGN KEY constraint failed (787)"), expectedKind: KindConstraintViolation},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), expectedKind: KindUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := storeError("insert product", tc.err)

			var storeErr *StoreError
			assert.True(t, errors.As(err, &storeErr))
			assert.Equal(t, tc.expectedKind, storeErr.Kind)
			assert.ErrorIs(t, err, tc.err)
			assert.Contains(t, err.Error(), "insert product: "+tc.expectedKind.String())
		})
	}
}

func TestStoreErrorIs(t *testing.T) {
	constraint := &StoreError{Op: "op", Kind: KindConstraintViolation, Err: errors.New("x")}
	unavailable := &StoreError{Op: "op", Kind: KindUnavailable, Err: errors.New("x")}

	assert.ErrorIs(t, constraint, ErrConstraintViolation)
	assert.NotErrorIs(t, constraint, ErrUnavailable)
	assert.ErrorIs(t, unavailable, ErrUnavailable)
	assert.NotErrorIs(t, unavailable, ErrConstraintViolation)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", unavailable), ErrUnavailable)
}
