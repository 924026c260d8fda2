package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table. Bills are stored as flat columns so they can be
// filtered and sorted on directly.
type Invoice struct {
	InvoiceID         string          `db:"invoice_id"`
	Kind              string          `db:"kind"`
	InvoiceNumber     string          `db:"invoice_number"`
	Status            string          `db:"status"`
	Shift             *string         `db:"shift"`
	CustomerID        *string         `db:"customer_id"`
	CustomerName      *string         `db:"customer_name"`
	SupplierID        *string         `db:"supplier_id"`
	SupplierName      *string         `db:"supplier_name"`
	Items             []byte          `db:"items"`
	BillsTotal        decimal.Decimal `db:"bills_total"`
	BillsTax          decimal.Decimal `db:"bills_tax"`
	BillsTotalWithTax decimal.Decimal `db:"bills_total_with_tax"`
	BillsPayed        decimal.Decimal `db:"bills_payed"`
	BillsBalance      decimal.Decimal `db:"bills_balance"`
	PaymentMethod     *string         `db:"payment_method"`
	InvoiceDate       time.Time       `db:"invoice_date"`
	AuditFields
}
