package mapping

import (
	"encoding/json"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:         d.InvoiceID,
		Kind:              string(d.Kind),
		InvoiceNumber:     d.InvoiceNumber,
		Status:            string(d.Status),
		CustomerID:        d.CustomerID,
		CustomerName:      d.CustomerName,
		SupplierID:        d.SupplierID,
		SupplierName:      d.SupplierName,
		Items:             []byte(d.Items),
		BillsTotal:        d.Bills.Total,
		BillsTax:          d.Bills.Tax,
		BillsTotalWithTax: d.Bills.TotalWithTax,
		BillsPayed:        d.Bills.Payed,
		BillsBalance:      d.Bills.Balance,
		InvoiceDate:       d.Date,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.Shift != "" {
		s := string(d.Shift)
		m.Shift = &s
	}
	if d.PaymentMethod != nil {
		pm := string(*d.PaymentMethod)
		m.PaymentMethod = &pm
	}
	if len(m.Items) == 0 {
		m.Items = []byte("[]")
	}
	return m
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:     m.InvoiceID,
		Kind:          domain.InvoiceKind(m.Kind),
		InvoiceNumber: m.InvoiceNumber,
		Status:        domain.InvoiceStatus(m.Status),
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		SupplierID:    m.SupplierID,
		SupplierName:  m.SupplierName,
		Items:         json.RawMessage(m.Items),
		Bills: domain.Bills{
			Total:        m.BillsTotal,
			Tax:          m.BillsTax,
			TotalWithTax: m.BillsTotalWithTax,
			Payed:        m.BillsPayed,
			Balance:      m.BillsBalance,
		},
		Date:        m.InvoiceDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Shift != nil {
		d.Shift = domain.Shift(*m.Shift)
	}
	if m.PaymentMethod != nil {
		pm := domain.PaymentMethod(*m.PaymentMethod)
		d.PaymentMethod = &pm
	}
	return d
}

// ToDomainInvoices converts a slice of model Invoices
func ToDomainInvoices(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
