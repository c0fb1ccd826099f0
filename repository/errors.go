// Package repository holds the typed persistence operations for every entity. Repositories
// enforce no business rules; they translate driver failures into the sentinel errors of
// package utils so callers can tell "not found" and "constraint violation" apart from
// other storage failures.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// translate maps gorm and driver errors onto utils.ErrNotFound / utils.ErrConstraintViolation.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", what, utils.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated), isConstraintMessage(err):
		return fmt.Errorf("%s: %w: %v", what, utils.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isConstraintMessage catches constraint errors the dialect did not translate (CHECK failures,
// older drivers).
func isConstraintMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{
		"unique constraint failed",
		"check constraint failed",
		"foreign key constraint failed",
		"duplicate entry",
		"duplicate key value",
		"violates check constraint",
		"violates foreign key constraint",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// notFoundIfEmpty turns a zero-row update into utils.ErrNotFound.
func notFoundIfEmpty(res *gorm.DB, what string) error {
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %w", what, utils.ErrNotFound)
	}
	return nil
}
