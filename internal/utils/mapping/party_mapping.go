package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:     m.PartyID,
		Kind:        domain.PartyKind(m.Kind),
		Name:        m.Name,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBalanceEntry converts a domain BalanceEntry to a model BalanceEntry
func ToModelBalanceEntry(d domain.BalanceEntry) models.BalanceEntry {
	return models.BalanceEntry{
		EntryID:       d.EntryID,
		PartyID:       d.PartyID,
		IntentID:      d.IntentID,
		InvoiceID:     d.InvoiceID,
		TransactionID: d.TransactionID,
		Delta:         d.Delta,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBalanceEntry converts a model BalanceEntry to a domain BalanceEntry
func ToDomainBalanceEntry(m models.BalanceEntry) domain.BalanceEntry {
	return domain.BalanceEntry{
		EntryID:       m.EntryID,
		PartyID:       m.PartyID,
		IntentID:      m.IntentID,
		InvoiceID:     m.InvoiceID,
		TransactionID: m.TransactionID,
		Delta:         m.Delta,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
