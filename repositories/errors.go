package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
)

// translate maps gorm errors onto apperrors sentinels. Duplicate keys are
// only reported as gorm.ErrDuplicatedKey when the connection is opened with
// TranslateError.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}
	return err
}
