package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSortField is a whitelisted sortable invoice field path.
type InvoiceSortField string

const (
	SortByCreatedAt         InvoiceSortField = "createdAt"
	SortByDate              InvoiceSortField = "date"
	SortByInvoiceNumber     InvoiceSortField = "invoiceNumber"
	SortByStatus            InvoiceSortField = "status"
	SortByKind              InvoiceSortField = "kind"
	SortByShift             InvoiceSortField = "shift"
	SortByCustomerName      InvoiceSortField = "customerName"
	SortBySupplierName      InvoiceSortField = "supplierName"
	SortByBillsTotal        InvoiceSortField = "bills.total"
	SortByBillsTax          InvoiceSortField = "bills.tax"
	SortByBillsTotalWithTax InvoiceSortField = "bills.totalWithTax"
	SortByBillsPayed        InvoiceSortField = "bills.payed"
	SortByBillsBalance      InvoiceSortField = "bills.balance"
)

var sortableInvoiceFields = map[InvoiceSortField]struct{}{
	SortByCreatedAt: {}, SortByDate: {}, SortByInvoiceNumber: {}, SortByStatus: {},
	SortByKind: {}, SortByShift: {}, SortByCustomerName: {}, SortBySupplierName: {},
	SortByBillsTotal: {}, SortByBillsTax: {}, SortByBillsTotalWithTax: {},
	SortByBillsPayed: {}, SortByBillsBalance: {},
}

// ParseInvoiceSortField returns the field for a path if it is sortable.
func ParseInvoiceSortField(path string) (InvoiceSortField, bool) {
	f := InvoiceSortField(path)
	_, ok := sortableInvoiceFields[f]
	return f, ok
}

// InvoiceSort is a single-field ordering.
type InvoiceSort struct {
	Field InvoiceSortField
	Desc  bool
}

// DefaultInvoiceSort orders newest records first.
var DefaultInvoiceSort = InvoiceSort{Field: SortByCreatedAt, Desc: true}

// InvoiceFilter is a normalized invoice query. Nil fields are not filtered on.
type InvoiceFilter struct {
	DateFrom   *time.Time
	Kind       *InvoiceKind
	Status     *InvoiceStatus
	Shift      *Shift
	CustomerID *string
	SupplierID *string
	Search     string
	// SearchAmount is matched exactly against bills.total, tax, totalWithTax and payed.
	SearchAmount *decimal.Decimal
	Sort         InvoiceSort
	Page         int
	Limit        int
}

// Offset is the number of records skipped before the current page.
func (f InvoiceFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// InvoicePage is one page of query results and the total number of matches.
type InvoicePage struct {
	Invoices   []Invoice
	TotalCount int
}
