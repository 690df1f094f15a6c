package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateWriteError classifies a failed insert or update.
func translateWriteError(err error, name string) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return apperror.Conflict(name + " already exists")
	case pgForeignKeyViolation:
		return apperror.NotFound("referenced record for " + name + " not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict(name + " already exists")
	}
	return apperror.Persistence("could not write "+name, err)
}

// translateDeleteError classifies a failed delete. A foreign key violation
// here means other rows still reference the target.
func translateDeleteError(err error, name string) error {
	if err == nil {
		return nil
	}
	if pgCode(err) == pgForeignKeyViolation || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.Conflict(name + " is still referenced")
	}
	return apperror.Persistence("could not delete "+name, err)
}

func readError(err error, name string) error {
	return apperror.Persistence("could not read "+name, err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
