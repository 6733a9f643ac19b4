package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cafemanagement/internal/apperror"
)

// translate converts driver errors into the shared taxonomy. Context
// cancellation and deadline errors pass through untouched so callers can
// recognize their own cancellation.
func translate(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.Wrap(apperror.NotFound, notFoundMsg, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Wrap(apperror.Conflict, conflictMsg, err)
	default:
		return apperror.Wrap(apperror.TransientIO, "storage error", err)
	}
}
