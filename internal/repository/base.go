package repository

import (
	"context"
	"errors"

	"askboard/internal/models"

	"gorm.io/gorm"
)

// translateErr maps store-level failures onto the application error taxonomy.
// Record-not-found becomes NOT_FOUND; context expiry and connection loss become
// STORE_UNAVAILABLE. Everything else passes through unchanged.
func translateErr(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.NewStoreError(err)
	default:
		return err
	}
}
