package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory store with the same balance compare-and-set
// semantics as the postgres party repository.
type memStore struct {
	mu           sync.Mutex
	invoices     map[string]domain.Invoice
	parties      map[string]domain.Party
	transactions map[string]domain.Transaction
	intents      map[string]domain.PaymentIntent
	entries      []domain.BalanceEntry

	// failTransactions makes SaveTransaction fail while set.
	failTransactions bool
}

func newMemStore(parties ...domain.Party) *memStore {
	s := &memStore{
		invoices:     map[string]domain.Invoice{},
		parties:      map[string]domain.Party{},
		transactions: map[string]domain.Transaction{},
		intents:      map[string]domain.PaymentIntent{},
	}
	for _, p := range parties {
		s.parties[p.PartyID] = p
	}
	return s
}

var (
	_ portsrepo.InvoiceRepositoryFacade       = (*memStore)(nil)
	_ portsrepo.PartyRepositoryFacade         = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.PaymentIntentRepositoryFacade = (*memStore)(nil)
)

func (s *memStore) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (s *memStore) ListInvoices(_ context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchInvoices(f)
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt) == f.Sort.Desc
		}
		return (a.InvoiceID > b.InvoiceID) == f.Sort.Desc
	})
	from := min(f.Offset(), len(matched))
	to := min(from+f.Limit, len(matched))
	return matched[from:to], nil
}

func (s *memStore) CountInvoices(_ context.Context, f domain.InvoiceFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matchInvoices(f)), nil
}

// matchInvoices evaluates the filter predicate the postgres query builder renders.
// Rows are ordered by createdAt only; other sort fields are covered by the builder tests.
func (s *memStore) matchInvoices(f domain.InvoiceFilter) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if invoiceMatches(f, inv) {
			out = append(out, inv)
		}
	}
	return out
}

func invoiceMatches(f domain.InvoiceFilter, inv domain.Invoice) bool {
	eq := func(want *string, got *string) bool {
		return want == nil || (got != nil && *got == *want)
	}
	switch {
	case f.DateFrom != nil && inv.Date.Before(*f.DateFrom):
		return false
	case f.Kind != nil && inv.Kind != *f.Kind:
		return false
	case f.Status != nil && inv.Status != *f.Status:
		return false
	case f.Shift != nil && inv.Shift != *f.Shift:
		return false
	case !eq(f.CustomerID, inv.CustomerID), !eq(f.SupplierID, inv.SupplierID):
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	for _, field := range []string{string(inv.Shift), inv.InvoiceNumber, deref(inv.CustomerName),
		deref(inv.SupplierName), string(inv.Status), string(inv.Kind)} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	if f.SearchAmount != nil {
		for _, amount := range []decimal.Decimal{inv.Bills.Total, inv.Bills.Tax, inv.Bills.TotalWithTax, inv.Bills.Payed} {
			if amount.Equal(*f.SearchAmount) {
				return true
			}
		}
	}
	return false
}

func (s *memStore) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[invoice.InvoiceID]; ok {
		return apperrors.ErrDuplicate
	}
	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *memStore) UpdateInvoice(_ context.Context, invoice domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[invoice.InvoiceID]; !ok {
		return apperrors.ErrNotFound
	}
	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *memStore) FindPartyByID(_ context.Context, kind domain.PartyKind, partyID string) (*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parties[partyID]
	if !ok || p.Kind != kind {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) ApplyBalanceEntry(_ context.Context, entry domain.BalanceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.IntentID == entry.IntentID {
			return apperrors.ErrDuplicate
		}
	}
	p, ok := s.parties[entry.PartyID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !p.Balance.Equal(entry.BalanceBefore) {
		return apperrors.ErrConflict
	}
	p.Balance = entry.BalanceAfter
	s.parties[p.PartyID] = p
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memStore) ListBalanceEntries(_ context.Context, partyID string) ([]domain.BalanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BalanceEntry
	for _, e := range s.entries {
		if e.PartyID == partyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *memStore) ListTransactions(_ context.Context, _ domain.TransactionFilter, _ int, _ *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	return out, nil, nil
}

func (s *memStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTransactions {
		return apperrors.NewAppError(500, "journal unavailable", nil)
	}
	s.transactions[txn.TransactionID] = txn
	return nil
}

func (s *memStore) FindPaymentIntentByID(_ context.Context, intentID string) (*domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.intents[intentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &in, nil
}

func (s *memStore) FindPaymentIntentByIdempotencyKey(_ context.Context, key string) (*domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range s.intents {
		if in.IdempotencyKey != nil && *in.IdempotencyKey == key {
			return &in, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListIncompletePaymentIntents(_ context.Context, updatedBefore time.Time, limit int) ([]domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.PaymentIntent
	for _, in := range s.intents {
		if !in.IsComplete() && in.LastUpdatedAt.Before(updatedBefore) && len(out) < limit {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *memStore) SavePaymentIntent(_ context.Context, intent domain.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range s.intents {
		if intent.IdempotencyKey != nil && in.IdempotencyKey != nil && *in.IdempotencyKey == *intent.IdempotencyKey {
			return apperrors.ErrDuplicate
		}
	}
	s.intents[intent.IntentID] = intent
	return nil
}

func (s *memStore) UpdatePaymentIntent(_ context.Context, intent domain.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.intents[intent.IntentID]; !ok {
		return apperrors.ErrNotFound
	}
	s.intents[intent.IntentID] = intent
	return nil
}

func (s *memStore) party(id string) domain.Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parties[id]
}
