package db

import (
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/customercore-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique constraint failure. When
// constraintName is provided the failing constraint must match it.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if pg, ok := pkgerrors.PGInfo(err); ok {
		if pg.Code != sqlStateUniqueViolation {
			return false
		}
		return constraintName == "" || pg.Constraint == constraintName || strings.Contains(pg.Message, constraintName)
	}

	msg := err.Error()
	unique := errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
	if !unique {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}

// IsForeignKeyViolation reports whether err is a foreign key failure, such as
// deleting a row that is still referenced under ON DELETE RESTRICT.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if pg, ok := pkgerrors.PGInfo(err); ok {
		return pg.Code == sqlStateForeignKeyViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}

// IsNotFound reports whether err is GORM's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
