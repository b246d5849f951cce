package database

import (
	"errors"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"

	"gorm.io/gorm"
)

// translate maps gorm sentinel errors onto application error kinds.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(resource + " already exists")
	}
	return err
}
