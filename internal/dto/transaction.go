package dto

import "github.com/SscSPs/invoice_ledger/internal/core/domain"

// ListTransactionsParams are the query parameters of GET /transactions.
type ListTransactionsParams struct {
	Type      domain.TransactionType     `form:"type" binding:"omitempty,oneof=Income Expense"`
	Category  domain.TransactionCategory `form:"category" binding:"omitempty,oneof=customerPayment supplierPayment"`
	Limit     int                        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string                    `form:"nextToken"`
}

// ListTransactionsResponse is one page of journal entries.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
