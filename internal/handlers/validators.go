package handlers

import (
	"fmt"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the ledger enum validators on gin's binding engine.
// It must run before any route binds a request.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	validators := map[string]validator.Func{
		"ledgerkind":    validateLedgerKind,
		"invoicestatus": validateInvoiceStatus,
		"partykind":     validatePartyKind,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// validateLedgerKind accepts the invoice kinds that can be created directly.
// Payment kinds are produced by the payment flow only.
func validateLedgerKind(fl validator.FieldLevel) bool {
	kind := domain.InvoiceKind(fl.Field().String())
	return kind.IsValid() && !kind.IsPayment()
}

func validateInvoiceStatus(fl validator.FieldLevel) bool {
	return domain.InvoiceStatus(fl.Field().String()).IsValid()
}

func validatePartyKind(fl validator.FieldLevel) bool {
	return domain.PartyKind(fl.Field().String()).IsValid()
}
