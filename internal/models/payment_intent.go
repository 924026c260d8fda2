package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIntent is a row of the payment_intents table.
type PaymentIntent struct {
	IntentID       string          `db:"intent_id"`
	IdempotencyKey *string         `db:"idempotency_key"`
	PartyID        string          `db:"party_id"`
	PartyKind      string          `db:"party_kind"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	PaymentDate    time.Time       `db:"payment_date"`
	Stage          string          `db:"stage"`
	LastStage      string          `db:"last_stage"`
	FailedStage    *string         `db:"failed_stage"`
	InvoiceID      string          `db:"invoice_id"`
	TransactionID  string          `db:"transaction_id"`
	LastError      *string         `db:"last_error"`
	AuditFields
}
