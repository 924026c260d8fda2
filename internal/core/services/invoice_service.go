package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	searchFailedMessage    = "failed to search invoices"
	statementFailedMessage = "failed to load statement"
)

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	partyRepo   portsrepo.PartyReader
	limits      pagination.Limits
	location    *time.Location
	now         func() time.Time
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithPageLimits overrides the default and maximum page size of invoice queries.
func WithPageLimits(limits pagination.Limits) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.limits = limits
	}
}

// WithShiftLocation sets the time zone in which shifts are classified.
func WithShiftLocation(loc *time.Location) InvoiceServiceOption {
	return func(s *invoiceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithInvoiceClock replaces time.Now, mainly for tests.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, partyRepo portsrepo.PartyReader, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		limits:      pagination.DefaultLimits(),
		location:    time.Local,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, authorID string) (*domain.Invoice, error) {
	if !req.Kind.IsValid() || req.Kind.IsPayment() {
		return nil, fmt.Errorf("%w: kind must be one of SaleInvoice, PurchaseInvoice, ProductionInvoice", apperrors.ErrValidation)
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if len(req.Items) == 0 || !json.Valid(req.Items) {
		return nil, fmt.Errorf("%w: items are required", apperrors.ErrValidation)
	}

	customerID, supplierID := nonEmpty(req.CustomerID), nonEmpty(req.SupplierID)
	switch req.Kind {
	case domain.SaleInvoice:
		if customerID == nil || supplierID != nil {
			return nil, fmt.Errorf("%w: a sale invoice references exactly one customer", apperrors.ErrValidation)
		}
	case domain.PurchaseInvoice:
		if supplierID == nil || customerID != nil {
			return nil, fmt.Errorf("%w: a purchase invoice references exactly one supplier", apperrors.ErrValidation)
		}
	case domain.ProductionInvoice:
		if customerID != nil && supplierID != nil {
			return nil, fmt.Errorf("%w: a production invoice references at most one party", apperrors.ErrValidation)
		}
	}

	bills := domain.CalculateBills(domain.BillsInput{Total: req.Total, Tax: req.Tax, Payed: req.Payed})
	if err := validateBills(bills); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		Kind:          req.Kind,
		InvoiceNumber: req.InvoiceNumber,
		Status:        status,
		Shift:         domain.ClassifyShift(now.In(s.location)),
		CustomerID:    customerID,
		SupplierID:    supplierID,
		Items:         req.Items,
		Bills:         bills,
		Date:          now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}
	if req.Date != nil && !req.Date.IsZero() {
		invoice.Date = req.Date.UTC()
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = defaultInvoiceNumber(now)
	}

	if customerID != nil {
		name, err := s.partyName(ctx, domain.CustomerParty, *customerID)
		if err != nil {
			return nil, err
		}
		invoice.CustomerName = &name
	}
	if supplierID != nil {
		name, err := s.partyName(ctx, domain.SupplierParty, *supplierID)
		if err != nil {
			return nil, err
		}
		invoice.SupplierName = &name
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("kind", string(invoice.Kind)),
		slog.String("shift", string(invoice.Shift)))
	return &invoice, nil
}

func validateBills(bills domain.Bills) error {
	if field := bills.InvalidMoneyField(); field != "" {
		return fmt.Errorf("%w: %s must have at most %d decimal places and fit NUMERIC(20,4)",
			apperrors.ErrValidation, field, domain.MoneyScale)
	}
	return nil
}

func (s *invoiceService) partyName(ctx context.Context, kind domain.PartyKind, partyID string) (string, error) {
	if err := validateID(string(kind)+" reference", partyID); err != nil {
		return "", err
	}
	party, err := s.partyRepo.FindPartyByID(ctx, kind, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %s %s", apperrors.ErrPartyNotFound, kind, partyID)
		}
		return "", fmt.Errorf("failed to load %s %s: %w", kind, partyID, err)
	}
	return party.Name, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if err := validateID("invoice id", invoiceID); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	s.enrichPartyNames(ctx, invoice)
	return invoice, nil
}

// enrichPartyNames replaces stored party names with current ones. Lookup failures keep the stored name.
func (s *invoiceService) enrichPartyNames(ctx context.Context, invoice *domain.Invoice) {
	enrich := func(kind domain.PartyKind, id *string, name **string) {
		if id == nil {
			return
		}
		party, err := s.partyRepo.FindPartyByID(ctx, kind, *id)
		if err != nil {
			s.LogDebug(ctx, "Party name enrichment skipped",
				slog.String("party_id", *id),
				slog.String("error", err.Error()))
			return
		}
		partyName := party.Name
		*name = &partyName
	}
	enrich(domain.CustomerParty, invoice.CustomerID, &invoice.CustomerName)
	enrich(domain.SupplierParty, invoice.SupplierID, &invoice.SupplierName)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := validateID("invoice id", invoiceID); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *req.Status)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if req.Bills != nil && invoice.Kind.IsPayment() {
		return nil, fmt.Errorf("%w: bills of a payment invoice are derived from the party balance", apperrors.ErrValidation)
	}

	changed := false
	if req.Status != nil && *req.Status != invoice.Status {
		invoice.Status = *req.Status
		changed = true
	}
	if in := req.Bills.ToDomain(); in != nil {
		bills := domain.CalculateBills(domain.BillsInput{
			Total: coalesce(in.Total, invoice.Bills.Total),
			Tax:   coalesce(in.Tax, invoice.Bills.Tax),
			Payed: coalesce(in.Payed, invoice.Bills.Payed),
		})
		if err := validateBills(bills); err != nil {
			return nil, err
		}
		if !billsEqual(bills, invoice.Bills) {
			invoice.Bills = bills
			changed = true
		}
	}
	if !changed {
		return invoice, nil
	}

	invoice.LastUpdatedAt = s.now().UTC()
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	s.LogInfo(ctx, "Invoice updated", slog.String("invoice_id", invoiceID), slog.String("status", string(invoice.Status)))
	return invoice, nil
}

func (s *invoiceService) SearchInvoices(ctx context.Context, req dto.SearchInvoicesRequest) (*dto.SearchInvoicesResponse, error) {
	filter := BuildInvoiceFilter(req.InvoiceQueryRequest, s.now().UTC(), s.limits, false)
	filter.CustomerID = sentinel(req.CustomerID)
	filter.SupplierID = sentinel(req.SupplierID)

	page, err := s.queryInvoices(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Invoice search failed")
		resp := dto.NewSearchInvoicesResponse(&domain.InvoicePage{}, filter.Page, filter.Limit)
		resp.Error = searchFailedMessage
		return resp, err
	}
	return dto.NewSearchInvoicesResponse(page, filter.Page, filter.Limit), nil
}

func (s *invoiceService) GetPartyStatement(ctx context.Context, kind domain.PartyKind, req dto.StatementRequest) (*dto.StatementResponse, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown party kind %q", apperrors.ErrValidation, kind)
	}
	partyID := sentinel(req.PartyID)
	if partyID == nil {
		return nil, fmt.Errorf("%w: partyRef is required", apperrors.ErrValidation)
	}
	if err := validateID("partyRef", *partyID); err != nil {
		return nil, err
	}

	filter := BuildInvoiceFilter(req.InvoiceQueryRequest, s.now().UTC(), s.limits, true)
	if kind == domain.CustomerParty {
		filter.CustomerID = partyID
	} else {
		filter.SupplierID = partyID
	}

	page, err := s.queryInvoices(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Party statement failed", slog.String("party_id", *partyID))
		resp := dto.NewStatementResponse(&domain.InvoicePage{}, filter.Page, filter.Limit)
		resp.Error = statementFailedMessage
		return resp, err
	}
	return dto.NewStatementResponse(page, filter.Page, filter.Limit), nil
}

// queryInvoices fetches the page slice and the total match count concurrently.
func (s *invoiceService) queryInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	var (
		invoices []domain.Invoice
		total    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.invoiceRepo.ListInvoices(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.invoiceRepo.CountInvoices(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return &domain.InvoicePage{Invoices: invoices, TotalCount: total}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func coalesce(v *decimal.Decimal, fallback decimal.Decimal) *decimal.Decimal {
	if v != nil {
		return v
	}
	return &fallback
}

func billsEqual(a, b domain.Bills) bool {
	return a.Total.Equal(b.Total) && a.Tax.Equal(b.Tax) && a.TotalWithTax.Equal(b.TotalWithTax) &&
		a.Payed.Equal(b.Payed) && a.Balance.Equal(b.Balance)
}

// defaultInvoiceNumber is the millisecond timestamp used when the caller sends no number.
func defaultInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("%d", t.UnixMilli())
}
