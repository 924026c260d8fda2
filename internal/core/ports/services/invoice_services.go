package services

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice and fills in party names from the party store.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// SearchInvoices runs a filtered, sorted and paginated invoice query.
	// On a read failure it returns an empty response carrying the error message together with the error.
	SearchInvoices(ctx context.Context, req dto.SearchInvoicesRequest) (*dto.SearchInvoicesResponse, error)

	// GetPartyStatement runs an invoice query scoped to one customer or supplier.
	GetPartyStatement(ctx context.Context, kind domain.PartyKind, req dto.StatementRequest) (*dto.StatementResponse, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice records a sale, purchase or production invoice.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, authorID string) (*domain.Invoice, error)

	// UpdateInvoice changes the status and/or bills of an invoice.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
