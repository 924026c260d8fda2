package dto

import "github.com/SscSPs/invoice_ledger/internal/core/domain"

// PartyLedgerResponse is the balance history of a party with its reconciliation result.
type PartyLedgerResponse struct {
	Party          domain.Party                 `json:"party"`
	Entries        []domain.BalanceEntry        `json:"entries"`
	Reconciliation domain.BalanceReconciliation `json:"reconciliation"`
}
