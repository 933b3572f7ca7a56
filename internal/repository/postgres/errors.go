package postgres

import (
	"database/sql"
	"errors"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// mapError translates driver errors into domain errors. Anything the caller
// cannot act on becomes a StoreError.
func mapError(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return domain.ErrConflict
		case pqForeignKeyViolation:
			return domain.NotFound(entity)
		}
	}
	logger.Error("Database call failed", "operation", op, "error", err)
	return domain.NewStoreError(op, err)
}

// expectRows reports NotFound when an UPDATE or DELETE touched nothing.
func expectRows(op, entity string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, entity, err)
	}
	if n == 0 {
		return domain.NotFound(entity)
	}
	return nil
}
