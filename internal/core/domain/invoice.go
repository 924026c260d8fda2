package domain

import (
	"encoding/json"
	"time"
)

// InvoiceKind discriminates the monetary event an invoice records.
type InvoiceKind string

const (
	SaleInvoice       InvoiceKind = "SaleInvoice"
	PurchaseInvoice   InvoiceKind = "PurchaseInvoice"
	ProductionInvoice InvoiceKind = "ProductionInvoice"
	CustomerPayment   InvoiceKind = "CustomerPayment"
	SupplierPayment   InvoiceKind = "SupplierPayment"
)

// IsValid reports whether k is a known invoice kind.
func (k InvoiceKind) IsValid() bool {
	switch k {
	case SaleInvoice, PurchaseInvoice, ProductionInvoice, CustomerPayment, SupplierPayment:
		return true
	}
	return false
}

// IsPayment reports whether k is a bare payment kind.
func (k InvoiceKind) IsPayment() bool {
	return k == CustomerPayment || k == SupplierPayment
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusPending    InvoiceStatus = "Pending"
	StatusInProgress InvoiceStatus = "InProgress"
	StatusCompleted  InvoiceStatus = "Completed"
	StatusCancelled  InvoiceStatus = "Cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is how money moved for a payment-kind invoice.
type PaymentMethod string

const (
	Cash   PaymentMethod = "Cash"
	Online PaymentMethod = "Online"
)

func (m PaymentMethod) IsValid() bool {
	return m == Cash || m == Online
}

// Invoice is the single ledger document for sales, purchases, production runs and payments.
// Bills is the only stored sub-ledger; per-kind views are derived from Kind.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	Kind          InvoiceKind     `json:"kind"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Status        InvoiceStatus   `json:"status"`
	Shift         Shift           `json:"shift,omitempty"`
	CustomerID    *string         `json:"customerRef,omitempty"`
	CustomerName  *string         `json:"customerName,omitempty"`
	SupplierID    *string         `json:"supplierRef,omitempty"`
	SupplierName  *string         `json:"supplierName,omitempty"`
	Items         json.RawMessage `json:"items,omitempty"`
	Bills         Bills           `json:"bills"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod,omitempty"`
	Date          time.Time       `json:"date"`
	AuditFields
}

// PartyRef returns the referenced party id and its kind, if any.
func (i Invoice) PartyRef() (string, PartyKind, bool) {
	if i.CustomerID != nil && *i.CustomerID != "" {
		return *i.CustomerID, CustomerParty, true
	}
	if i.SupplierID != nil && *i.SupplierID != "" {
		return *i.SupplierID, SupplierParty, true
	}
	return "", "", false
}

// KindBills returns the per-kind projection of the canonical bills:
// sale, buy and production views. Only the view matching the invoice kind is set.
func (i Invoice) KindBills() (sale, buy, production *Bills) {
	b := i.Bills
	switch i.Kind {
	case SaleInvoice:
		return &b, nil, nil
	case PurchaseInvoice:
		return nil, &b, nil
	case ProductionInvoice:
		return nil, nil, &b
	}
	return nil, nil, nil
}

// InvoiceUpdate carries the mutable parts of an invoice. Nil fields are left as-is.
type InvoiceUpdate struct {
	Status *InvoiceStatus
	Bills  *BillsInput
}
