package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the cash-flow direction of a journal entry.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// TransactionCategory classifies why money moved.
type TransactionCategory string

const (
	CategoryCustomerPayment TransactionCategory = "customerPayment"
	CategorySupplierPayment TransactionCategory = "supplierPayment"
)

// Transaction is an append-only cash-flow journal entry.
type Transaction struct {
	TransactionID string              `json:"transactionID"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	Type          TransactionType     `json:"type"`
	Category      TransactionCategory `json:"category"`
	Reference     string              `json:"reference"` // InvoiceID
	Description   string              `json:"description"`
	Date          time.Time           `json:"date"`
	AuditFields
}

// TransactionFilter narrows a journal listing. Empty fields are ignored.
type TransactionFilter struct {
	Type     TransactionType
	Category TransactionCategory
}
