package pgsql

import (
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

const invoiceColumns = `invoice_id, kind, invoice_number, status, shift,
	customer_id, customer_name, supplier_id, supplier_name, items,
	bills_total, bills_tax, bills_total_with_tax, bills_payed, bills_balance,
	payment_method, invoice_date, created_at, created_by, last_updated_at, last_updated_by`

// invoiceSortColumns maps sortable field paths to columns. Only these reach ORDER BY.
var invoiceSortColumns = map[domain.InvoiceSortField]string{
	domain.SortByCreatedAt:         "created_at",
	domain.SortByDate:              "invoice_date",
	domain.SortByInvoiceNumber:     "invoice_number",
	domain.SortByStatus:            "status",
	domain.SortByKind:              "kind",
	domain.SortByShift:             "shift",
	domain.SortByCustomerName:      "customer_name",
	domain.SortBySupplierName:      "supplier_name",
	domain.SortByBillsTotal:        "bills_total",
	domain.SortByBillsTax:          "bills_tax",
	domain.SortByBillsTotalWithTax: "bills_total_with_tax",
	domain.SortByBillsPayed:        "bills_payed",
	domain.SortByBillsBalance:      "bills_balance",
}

var invoiceSearchColumns = []string{
	"shift", "invoice_number", "customer_name", "supplier_name", "status", "kind",
}

var invoiceAmountColumns = []string{
	"bills_total", "bills_tax", "bills_total_with_tax", "bills_payed",
}

// invoiceQuery is a parameterized WHERE clause shared by the page and count statements.
type invoiceQuery struct {
	where string
	args  []any
}

func (q *invoiceQuery) param(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// buildInvoiceQuery translates a filter into a parameterized predicate.
func buildInvoiceQuery(f domain.InvoiceFilter) invoiceQuery {
	q := invoiceQuery{}
	var conds []string

	if f.DateFrom != nil {
		conds = append(conds, "invoice_date >= "+q.param(*f.DateFrom))
	}
	if f.Kind != nil {
		conds = append(conds, "kind = "+q.param(string(*f.Kind)))
	}
	if f.Status != nil {
		conds = append(conds, "status = "+q.param(string(*f.Status)))
	}
	if f.Shift != nil {
		conds = append(conds, "shift = "+q.param(string(*f.Shift)))
	}
	if f.CustomerID != nil {
		conds = append(conds, "customer_id = "+q.param(*f.CustomerID))
	}
	if f.SupplierID != nil {
		conds = append(conds, "supplier_id = "+q.param(*f.SupplierID))
	}

	if f.Search != "" {
		pattern := q.param("%" + escapeLike(f.Search) + "%")
		ors := make([]string, 0, len(invoiceSearchColumns)+len(invoiceAmountColumns))
		for _, col := range invoiceSearchColumns {
			ors = append(ors, col+" ILIKE "+pattern)
		}
		if f.SearchAmount != nil {
			amount := q.param(*f.SearchAmount)
			for _, col := range invoiceAmountColumns {
				ors = append(ors, col+" = "+amount)
			}
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) > 0 {
		q.where = "WHERE " + strings.Join(conds, " AND ")
	}
	return q
}

// orderBy renders the sort with invoice_id as a stable tie-breaker.
func orderBy(s domain.InvoiceSort) string {
	col, ok := invoiceSortColumns[s.Field]
	if !ok {
		col = invoiceSortColumns[domain.DefaultInvoiceSort.Field]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return "ORDER BY " + col + " " + dir + " NULLS LAST, invoice_id " + dir
}

// selectSQL returns the page statement and its arguments.
func (q invoiceQuery) selectSQL(f domain.InvoiceFilter) (string, []any) {
	args := append([]any{}, q.args...)
	args = append(args, f.Limit, f.Offset())
	sql := "SELECT " + invoiceColumns + " FROM invoices " + q.where + " " + orderBy(f.Sort) +
		" LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	return sql, args
}

// countSQL returns the total match count statement and its arguments.
func (q invoiceQuery) countSQL() (string, []any) {
	return "SELECT COUNT(*) FROM invoices " + q.where, q.args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
