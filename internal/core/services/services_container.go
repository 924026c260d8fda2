package services

import (
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/platform/config"
	"github.com/SscSPs/invoice_ledger/internal/utils/pagination"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	invoiceOptions := []InvoiceServiceOption{WithShiftLocation(cfg.ShiftLocation)}
	if cfg.QueryDefaultLimit > 0 && cfg.QueryMaxLimit > 0 {
		invoiceOptions = append(invoiceOptions, WithPageLimits(pagination.Limits{
			Default: cfg.QueryDefaultLimit,
			Max:     cfg.QueryMaxLimit,
		}))
	}

	return &portssvc.ServiceContainer{
		Invoice: NewInvoiceService(repos.InvoiceRepo, repos.PartyRepo, invoiceOptions...),
		Payment: NewPaymentService(repos.InvoiceRepo, repos.PartyRepo, repos.TransactionRepo, repos.PaymentIntentRepo),
		Ledger:  NewLedgerService(repos.TransactionRepo, repos.PartyRepo),
	}
}
