package dto

import (
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the body of POST /payments.
// Amount and method are checked by the payment service so failures carry their own error kinds.
type RecordPaymentRequest struct {
	PartyID        string               `json:"partyRef" binding:"required"`
	PartyKind      domain.PartyKind     `json:"partyKind" binding:"required,partykind"`
	Amount         decimal.Decimal      `json:"amount"`
	Method         domain.PaymentMethod `json:"method"`
	Date           *time.Time           `json:"date"`
	InvoiceNumber  string               `json:"invoiceNumber"`
	IdempotencyKey *string              `json:"idempotencyKey" binding:"omitempty,max=128"`
}

// PaymentResponse wraps a saga result.
type PaymentResponse struct {
	Payment domain.PaymentResult `json:"payment"`
	Error   string               `json:"error,omitempty"`
}

// ReconcileSummary reports a batch run over incomplete payment intents.
type ReconcileSummary struct {
	Scanned   int      `json:"scanned"`
	Completed int      `json:"completed"`
	Failed    []string `json:"failed"`
}
