package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

// wrapError maps gorm errors onto domain errors
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
