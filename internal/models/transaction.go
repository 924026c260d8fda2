package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions (cash-flow journal) table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod string          `db:"payment_method"`
	Type          string          `db:"transaction_type"`
	Category      string          `db:"category"`
	Reference     string          `db:"reference"`
	Description   string          `db:"description"`
	TxnDate       time.Time       `db:"transaction_date"`
	AuditFields
}
