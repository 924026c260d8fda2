package services

import (
	"fmt"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/google/uuid"
)

// validateID rejects identifiers that are not well-formed UUIDs.
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s %q", apperrors.ErrInvalidID, field, id)
	}
	return nil
}
