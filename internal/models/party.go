package models

import "github.com/shopspring/decimal"

// Party is a row of the parties table.
type Party struct {
	PartyID string          `db:"party_id"`
	Kind    string          `db:"kind"`
	Name    string          `db:"name"`
	Balance decimal.Decimal `db:"balance"`
	AuditFields
}

// BalanceEntry is a row of the party_balance_entries table.
type BalanceEntry struct {
	EntryID       string          `db:"entry_id"`
	PartyID       string          `db:"party_id"`
	IntentID      string          `db:"intent_id"`
	InvoiceID     string          `db:"invoice_id"`
	TransactionID string          `db:"transaction_id"`
	Delta         decimal.Decimal `db:"delta"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	AuditFields
}
