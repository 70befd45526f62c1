package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
)

// translate maps driver errors onto application errors. Anything it does
// not recognise is wrapped with the operation name.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case isAppError(err):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("%s: record already exists", op)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Conflict("%s: record is referenced by other data", op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isAppError(err error) bool {
	_, ok := apperrors.As(err)
	return ok
}
