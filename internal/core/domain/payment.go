package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStage is a state of the payment saga.
type PaymentStage string

const (
	StageInitiated           PaymentStage = "Initiated"
	StageInvoiceRecorded     PaymentStage = "InvoiceRecorded"
	StageTransactionRecorded PaymentStage = "TransactionRecorded"
	StageBalanceUpdated      PaymentStage = "BalanceUpdated"
	StageFailed              PaymentStage = "Failed"
)

// PaymentIntent is the persisted record of one payment saga run.
// Invoice and transaction ids are allocated up front so a resumed run can detect
// which steps already landed.
type PaymentIntent struct {
	IntentID       string          `json:"intentID"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	PartyID        string          `json:"partyID"`
	PartyKind      PartyKind       `json:"partyKind"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Date           time.Time       `json:"date"`
	Stage          PaymentStage    `json:"stage"`
	// LastStage is the last stage reached before a failure; equal to Stage otherwise.
	LastStage     PaymentStage  `json:"lastStage"`
	FailedStage   *PaymentStage `json:"failedStage,omitempty"`
	InvoiceID     string        `json:"invoiceID"`
	TransactionID string        `json:"transactionID"`
	LastError     *string       `json:"lastError,omitempty"`
	AuditFields
}

// IsComplete reports whether the saga reached its terminal success state.
func (p PaymentIntent) IsComplete() bool {
	return p.Stage == StageBalanceUpdated
}

// PaymentInvoiceKind returns the invoice kind a payment by this party kind produces.
func (k PartyKind) PaymentInvoiceKind() InvoiceKind {
	if k == SupplierParty {
		return SupplierPayment
	}
	return CustomerPayment
}

// JournalClassification returns the transaction type and category for a payment by this party kind.
func (k PartyKind) JournalClassification() (TransactionType, TransactionCategory) {
	if k == SupplierParty {
		return Expense, CategorySupplierPayment
	}
	return Income, CategoryCustomerPayment
}

// PaymentResult is what a saga run reports back to the caller.
type PaymentResult struct {
	Intent        PaymentIntent   `json:"intent"`
	Invoice       *Invoice        `json:"invoice,omitempty"`
	Transaction   *Transaction    `json:"transaction,omitempty"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
}
