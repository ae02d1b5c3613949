package services

import (
	"errors"
	"strings"

	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/internal/validation"
	"gorm.io/gorm"
)

// validate is safe for concurrent use and caches struct metadata, so one is shared
var validate = validation.New()

// isDuplicateKey reports a unique constraint violation. Dialectors without an error
// translator are caught by the driver message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// notFound converts a missing record into the NotFound failure
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFound()
	}
	return err
}

// lockRow takes the write lock on the row with the given id through a no-op update of
// column, then reports whether the row exists. SQL Server rejects SELECT ... FOR UPDATE
// and MySQL reports unchanged rows as unaffected, hence the separate count.
func lockRow(tx *gorm.DB, model interface{}, id, column string) (bool, error) {
	if err := tx.Model(model).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column)).Error; err != nil {
		return false, err
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
