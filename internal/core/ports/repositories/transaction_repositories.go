package repositories

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// TransactionReader defines read operations for the cash-flow journal
type TransactionReader interface {
	// FindTransactionByID retrieves a journal entry by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves journal entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter appends to the cash-flow journal
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all journal repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
