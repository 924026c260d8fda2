package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the body of POST /invoices. Shift and createdAt are assigned by the server.
type CreateInvoiceRequest struct {
	Kind          domain.InvoiceKind   `json:"kind" binding:"required,ledgerkind"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Status        domain.InvoiceStatus `json:"status" binding:"omitempty,invoicestatus"`
	CustomerID    *string              `json:"customerRef" binding:"omitempty,uuid"`
	SupplierID    *string              `json:"supplierRef" binding:"omitempty,uuid"`
	Items         json.RawMessage      `json:"items" binding:"required"`
	Total         *decimal.Decimal     `json:"total"`
	Tax           *decimal.Decimal     `json:"tax"`
	Payed         *decimal.Decimal     `json:"payed"`
	Date          *time.Time           `json:"date"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:invoiceID. Absent fields are left unchanged.
type UpdateInvoiceRequest struct {
	Status *domain.InvoiceStatus `json:"status" binding:"omitempty,invoicestatus"`
	Bills  *BillsRequest         `json:"bills"`
}

// BillsRequest carries the caller-owned parts of a sub-ledger; derived fields are recomputed.
type BillsRequest struct {
	Total *decimal.Decimal `json:"total"`
	Tax   *decimal.Decimal `json:"tax"`
	Payed *decimal.Decimal `json:"payed"`
}

// ToDomain converts the request into calculator input.
func (b *BillsRequest) ToDomain() *domain.BillsInput {
	if b == nil {
		return nil
	}
	return &domain.BillsInput{Total: b.Total, Tax: b.Tax, Payed: b.Payed}
}

// InvoiceQueryRequest holds the filter, sort and window fields shared by search and statements.
// Filter fields set to "all" are ignored. Any sortOrder other than asc sorts descending.
type InvoiceQueryRequest struct {
	FrequencyDays LenientInt `json:"frequencyDays"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Shift         string     `json:"shift"`
	Search        string     `json:"search"`
	SortBy        string     `json:"sortBy"`
	SortOrder     string     `json:"sortOrder"`
	Page          LenientInt `json:"page"`
	Limit         LenientInt `json:"limit"`
}

// SearchInvoicesRequest is the body of POST /invoices/search.
type SearchInvoicesRequest struct {
	InvoiceQueryRequest
	CustomerID string `json:"customerRef"`
	SupplierID string `json:"supplierRef"`
}

// StatementRequest is the body of the customer and supplier statement endpoints.
type StatementRequest struct {
	InvoiceQueryRequest
	PartyID string `json:"partyRef"`
}

// InvoiceResponse is an invoice as returned by the API, with per-kind bill views derived from kind.
type InvoiceResponse struct {
	domain.Invoice
	SaleBills       *domain.Bills `json:"saleBills,omitempty"`
	BuyBills        *domain.Bills `json:"buyBills,omitempty"`
	ProductionBills *domain.Bills `json:"productionBills,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its API shape.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	sale, buy, production := inv.KindBills()
	return InvoiceResponse{
		Invoice:         *inv,
		SaleBills:       sale,
		BuyBills:        buy,
		ProductionBills: production,
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// SearchPagination is the pagination block of POST /invoices/search.
type SearchPagination struct {
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// SearchInvoicesResponse is the body returned by POST /invoices/search.
// Error is set when the read failed and Data is empty.
type SearchInvoicesResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Pagination SearchPagination  `json:"pagination"`
	Error      string            `json:"error,omitempty"`
}

// NewSearchInvoicesResponse builds a response from one page of results.
func NewSearchInvoicesResponse(page *domain.InvoicePage, currentPage, limit int) *SearchInvoicesResponse {
	return &SearchInvoicesResponse{
		Data: ToInvoiceResponses(page.Invoices),
		Pagination: SearchPagination{
			CurrentPage: currentPage,
			Limit:       limit,
			Total:       page.TotalCount,
			TotalPages:  pagination.TotalPages(page.TotalCount, limit),
		},
	}
}

// StatementResponse is the body returned by the statement endpoints.
type StatementResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Pagination pagination.Meta   `json:"pagination"`
	// Subtotals folds the bills of the returned page.
	Subtotals domain.Bills `json:"subtotals"`
	Error     string       `json:"error,omitempty"`
}

// NewStatementResponse builds a statement response from one page of results.
func NewStatementResponse(page *domain.InvoicePage, currentPage, limit int) *StatementResponse {
	return &StatementResponse{
		Data:       ToInvoiceResponses(page.Invoices),
		Pagination: pagination.NewMeta(currentPage, limit, page.TotalCount),
		Subtotals:  domain.SumBills(page.Invoices),
	}
}
