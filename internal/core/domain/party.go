package domain

import "github.com/shopspring/decimal"

// PartyKind is either a customer or a supplier.
type PartyKind string

const (
	CustomerParty PartyKind = "Customer"
	SupplierParty PartyKind = "Supplier"
)

func (k PartyKind) IsValid() bool {
	return k == CustomerParty || k == SupplierParty
}

// Party is a customer or supplier with a running balance.
// For a customer a positive balance is owed to the business; for a supplier it is owed by the business.
type Party struct {
	PartyID string          `json:"partyID"`
	Kind    PartyKind       `json:"kind"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	AuditFields
}

// BalanceEntry is an immutable record of one party balance mutation.
type BalanceEntry struct {
	EntryID       string          `json:"entryID"`
	PartyID       string          `json:"partyID"`
	IntentID      string          `json:"intentID"`
	InvoiceID     string          `json:"invoiceID"`
	TransactionID string          `json:"transactionID"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	AuditFields
}

// BalanceReconciliation compares the stored scalar balance with its entry history.
type BalanceReconciliation struct {
	PartyID        string          `json:"partyID"`
	StoredBalance  decimal.Decimal `json:"storedBalance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DerivedBalance decimal.Decimal `json:"derivedBalance"`
	EntryCount     int             `json:"entryCount"`
	ChainBreaks    int             `json:"chainBreaks"`
	Reconciled     bool            `json:"reconciled"`
}

// ReconcileBalance replays entries (oldest first) from the first entry's opening balance.
// A chain break is an entry whose BalanceBefore differs from the previous BalanceAfter,
// which happens when the balance was changed outside the payment flow.
func ReconcileBalance(party Party, entries []BalanceEntry) BalanceReconciliation {
	rec := BalanceReconciliation{
		PartyID:       party.PartyID,
		StoredBalance: party.Balance,
		EntryCount:    len(entries),
	}
	if len(entries) == 0 {
		rec.OpeningBalance = party.Balance
		rec.DerivedBalance = party.Balance
		rec.Reconciled = true
		return rec
	}
	rec.OpeningBalance = entries[0].BalanceBefore
	derived := rec.OpeningBalance
	for i, e := range entries {
		if i > 0 && !e.BalanceBefore.Equal(entries[i-1].BalanceAfter) {
			rec.ChainBreaks++
		}
		derived = derived.Add(e.Delta)
	}
	rec.DerivedBalance = derived
	rec.Reconciled = rec.ChainBreaks == 0 && derived.Equal(party.Balance)
	return rec
}
