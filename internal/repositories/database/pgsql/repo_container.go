package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:       newPgxInvoiceRepository(dbPool),
		PartyRepo:         newPgxPartyRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		PaymentIntentRepo: newPgxPaymentIntentRepository(dbPool),
	}
}
