package repositories

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// PartyReader defines read operations for customers and suppliers
type PartyReader interface {
	// FindPartyByID retrieves a party of the given kind. Returns apperrors.ErrNotFound if absent.
	FindPartyByID(ctx context.Context, kind domain.PartyKind, partyID string) (*domain.Party, error)
}

// PartyBalanceWriter mutates party balances.
type PartyBalanceWriter interface {
	// ApplyBalanceEntry moves the party balance from entry.BalanceBefore to entry.BalanceAfter and
	// records the entry, atomically. It returns apperrors.ErrConflict when the stored balance no
	// longer equals BalanceBefore, and apperrors.ErrDuplicate when an entry for the same intent exists.
	ApplyBalanceEntry(ctx context.Context, entry domain.BalanceEntry) error
}

// PartyLedgerReader reads the balance entry history of a party.
type PartyLedgerReader interface {
	// ListBalanceEntries returns all entries of a party, oldest first.
	ListBalanceEntries(ctx context.Context, partyID string) ([]domain.BalanceEntry, error)
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyBalanceWriter
	PartyLedgerReader
}
