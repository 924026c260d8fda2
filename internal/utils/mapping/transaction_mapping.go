package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		PaymentMethod: string(d.PaymentMethod),
		Type:          string(d.Type),
		Category:      string(d.Category),
		Reference:     d.Reference,
		Description:   d.Description,
		TxnDate:       d.Date,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Type:          domain.TransactionType(m.Type),
		Category:      domain.TransactionCategory(m.Category),
		Reference:     m.Reference,
		Description:   m.Description,
		Date:          m.TxnDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
