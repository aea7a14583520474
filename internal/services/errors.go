package services

import (
	"errors"

	"github.com/yungbote/contacts-backend/internal/apierr"
)

// asAPIError keeps apierr values intact across the transaction boundary and
// folds anything else into a storage error. By the time it runs the enclosing
// transaction has already rolled back, so callers may retry.
func asAPIError(err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apierr.Storage(err)
}
