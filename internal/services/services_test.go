package services_test

import (
	"errors"

	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

func asCustomError(err error, target **types.CustomError) bool {
	return errors.As(err, target)
}
