package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
)

const defaultTransactionLimit = 20

type ledgerService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	partyRepo       portsrepo.PartyRepositoryFacade
}

// NewLedgerService creates the read side of the journal and party balance ledger.
func NewLedgerService(transactionRepo portsrepo.TransactionReader, partyRepo portsrepo.PartyRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		partyRepo:       partyRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	nextToken := params.NextToken
	if nextToken != nil && *nextToken == "" {
		nextToken = nil
	}

	filter := domain.TransactionFilter{Type: params.Type, Category: params.Category}
	txns, token, err := s.transactionRepo.ListTransactions(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return &dto.ListTransactionsResponse{Transactions: txns, NextToken: token}, nil
}

func (s *ledgerService) GetPartyLedger(ctx context.Context, kind domain.PartyKind, partyID string) (*dto.PartyLedgerResponse, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown party kind %q", apperrors.ErrValidation, kind)
	}
	if err := validateID(string(kind)+" id", partyID); err != nil {
		return nil, err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, kind, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrPartyNotFound, kind, partyID)
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, partyID, err)
	}

	entries, err := s.partyRepo.ListBalanceEntries(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance entries: %w", err)
	}
	if entries == nil {
		entries = []domain.BalanceEntry{}
	}

	rec := domain.ReconcileBalance(*party, entries)
	if !rec.Reconciled {
		s.LogInfo(ctx, "Party balance does not reconcile with its entries",
			slog.String("party_id", partyID),
			slog.String("stored", rec.StoredBalance.String()),
			slog.String("derived", rec.DerivedBalance.String()),
			slog.Int("chain_breaks", rec.ChainBreaks))
	}
	return &dto.PartyLedgerResponse{Party: *party, Entries: entries, Reconciliation: rec}, nil
}
