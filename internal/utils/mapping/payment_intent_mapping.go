package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToModelPaymentIntent converts a domain PaymentIntent to a model PaymentIntent
func ToModelPaymentIntent(d domain.PaymentIntent) models.PaymentIntent {
	m := models.PaymentIntent{
		IntentID:       d.IntentID,
		IdempotencyKey: d.IdempotencyKey,
		PartyID:        d.PartyID,
		PartyKind:      string(d.PartyKind),
		Amount:         d.Amount,
		Method:         string(d.Method),
		PaymentDate:    d.Date,
		Stage:          string(d.Stage),
		LastStage:      string(d.LastStage),
		InvoiceID:      d.InvoiceID,
		TransactionID:  d.TransactionID,
		LastError:      d.LastError,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.FailedStage != nil {
		fs := string(*d.FailedStage)
		m.FailedStage = &fs
	}
	return m
}

// ToDomainPaymentIntent converts a model PaymentIntent to a domain PaymentIntent
func ToDomainPaymentIntent(m models.PaymentIntent) domain.PaymentIntent {
	d := domain.PaymentIntent{
		IntentID:       m.IntentID,
		IdempotencyKey: m.IdempotencyKey,
		PartyID:        m.PartyID,
		PartyKind:      domain.PartyKind(m.PartyKind),
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Date:           m.PaymentDate,
		Stage:          domain.PaymentStage(m.Stage),
		LastStage:      domain.PaymentStage(m.LastStage),
		InvoiceID:      m.InvoiceID,
		TransactionID:  m.TransactionID,
		LastError:      m.LastError,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.FailedStage != nil {
		fs := domain.PaymentStage(*m.FailedStage)
		d.FailedStage = &fs
	}
	return d
}
