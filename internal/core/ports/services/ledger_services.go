package services

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
)

// TransactionReaderSvc lists the cash-flow journal
type TransactionReaderSvc interface {
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// PartyLedgerSvc exposes the balance history of a party
type PartyLedgerSvc interface {
	// GetPartyLedger returns the balance entries of a party and whether they reconcile with its balance.
	GetPartyLedger(ctx context.Context, kind domain.PartyKind, partyID string) (*dto.PartyLedgerResponse, error)
}

// LedgerSvcFacade combines journal and party ledger reads
type LedgerSvcFacade interface {
	TransactionReaderSvc
	PartyLedgerSvc
}
