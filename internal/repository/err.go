package repository

import (
	"errors"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

// asEntityErr translates gorm errors into the entity sentinels the
// usecase layer matches on.
func asEntityErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entity.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return entity.ErrConflict
	default:
		return err
	}
}
