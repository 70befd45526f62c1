package services

import (
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// internalError passes application errors through unchanged and wraps
// everything else as an Internal error with a caller-facing message.
func internalError(message string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(message, err)
}

func requireVendor(caller models.Caller, action string) error {
	if !caller.IsVendor() {
		return apperrors.Forbidden("Only vendors can %s", action)
	}
	return nil
}
