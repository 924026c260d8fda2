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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var stageOrder = map[domain.PaymentStage]int{
	domain.StageInitiated:           0,
	domain.StageInvoiceRecorded:     1,
	domain.StageTransactionRecorded: 2,
	domain.StageBalanceUpdated:      3,
}

type paymentService struct {
	BaseService
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	partyRepo       portsrepo.PartyRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	intentRepo      portsrepo.PaymentIntentRepositoryFacade
	locks           *partyLocks
	now             func() time.Time
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentClock replaces time.Now, mainly for tests.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.now = now
	}
}

// NewPaymentService creates the payment saga orchestrator.
func NewPaymentService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	intentRepo portsrepo.PaymentIntentRepositoryFacade,
	options ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		invoiceRepo:     invoiceRepo,
		partyRepo:       partyRepo,
		transactionRepo: transactionRepo,
		intentRepo:      intentRepo,
		locks:           newPartyLocks(),
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// paymentRun is the working state of one pass over the saga steps.
type paymentRun struct {
	intent        *domain.PaymentIntent
	party         *domain.Party
	balanceAfter  decimal.Decimal
	invoiceNumber string
	userID        string
	resuming      bool
	result        *domain.PaymentResult
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, authorID string) (*domain.PaymentResult, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if !domain.FitsMoneyColumn(req.Amount) {
		return nil, fmt.Errorf("%w: %s needs more than %d decimal places or is out of range",
			apperrors.ErrInvalidAmount, req.Amount, domain.MoneyScale)
	}
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: got %q", apperrors.ErrInvalidMethod, req.Method)
	}
	if !req.PartyKind.IsValid() {
		return nil, fmt.Errorf("%w: partyKind must be Customer or Supplier", apperrors.ErrValidation)
	}
	if err := validateID("partyRef", req.PartyID); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.intentRepo.FindPaymentIntentByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			return s.replay(ctx, existing, req)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
		}
	}

	unlock := s.locks.Lock(req.PartyID)
	defer unlock()

	party, err := s.findParty(ctx, req.PartyKind, req.PartyID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}
	intent := &domain.PaymentIntent{
		IntentID:       uuid.NewString(),
		IdempotencyKey: req.IdempotencyKey,
		PartyID:        party.PartyID,
		PartyKind:      party.Kind,
		Amount:         req.Amount,
		Method:         req.Method,
		Date:           date,
		Stage:          domain.StageInitiated,
		LastStage:      domain.StageInitiated,
		InvoiceID:      uuid.NewString(),
		TransactionID:  uuid.NewString(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}
	if intent.IdempotencyKey != nil && *intent.IdempotencyKey == "" {
		intent.IdempotencyKey = nil
	}

	if err := s.intentRepo.SavePaymentIntent(ctx, *intent); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && intent.IdempotencyKey != nil {
			existing, findErr := s.intentRepo.FindPaymentIntentByIdempotencyKey(ctx, *intent.IdempotencyKey)
			if findErr == nil {
				return s.replay(ctx, existing, req)
			}
		}
		s.LogError(ctx, err, "Failed to persist payment intent", slog.String("party_id", party.PartyID))
		intent.Stage = domain.StageFailed
		failed := domain.StageInitiated
		intent.FailedStage = &failed
		return &domain.PaymentResult{Intent: *intent, BalanceBefore: party.Balance, BalanceAfter: party.Balance},
			&apperrors.StageError{Stage: string(domain.StageInitiated), Err: err}
	}

	run := &paymentRun{
		intent:        intent,
		party:         party,
		balanceAfter:  party.Balance.Sub(intent.Amount),
		invoiceNumber: req.InvoiceNumber,
		userID:        authorID,
		result:        &domain.PaymentResult{BalanceBefore: party.Balance, BalanceAfter: party.Balance},
	}
	return s.advance(ctx, run)
}

// replay returns the result of an earlier payment recorded under the same idempotency key.
// A key reused for a different payment is a conflict.
func (s *paymentService) replay(ctx context.Context, existing *domain.PaymentIntent, req dto.RecordPaymentRequest) (*domain.PaymentResult, error) {
	if existing.PartyID != req.PartyID || existing.PartyKind != req.PartyKind ||
		!existing.Amount.Equal(req.Amount) || existing.Method != req.Method {
		s.LogWarn(ctx, "Idempotency key reused for a different payment", slog.String("intent_id", existing.IntentID))
		return nil, fmt.Errorf("%w: idempotency key %q belongs to another payment", apperrors.ErrConflict, *req.IdempotencyKey)
	}
	s.LogInfo(ctx, "Replaying payment for idempotency key", slog.String("intent_id", existing.IntentID))
	return s.loadResult(ctx, existing), nil
}

func (s *paymentService) ResumePayment(ctx context.Context, intentID string, userID string) (*domain.PaymentResult, error) {
	if err := validateID("intent id", intentID); err != nil {
		return nil, err
	}
	intent, err := s.intentRepo.FindPaymentIntentByID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(intent.PartyID)
	defer unlock()

	// Another run may have advanced the intent while we waited for the lock.
	intent, err = s.intentRepo.FindPaymentIntentByID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.IsComplete() {
		return s.loadResult(ctx, intent), nil
	}

	party, err := s.findParty(ctx, intent.PartyKind, intent.PartyID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Resuming payment",
		slog.String("intent_id", intent.IntentID),
		slog.String("last_stage", string(intent.LastStage)))

	run := &paymentRun{
		intent:       intent,
		party:        party,
		balanceAfter: party.Balance.Sub(intent.Amount),
		userID:       userID,
		resuming:     true,
		result:       &domain.PaymentResult{BalanceBefore: party.Balance, BalanceAfter: party.Balance},
	}
	return s.advance(ctx, run)
}

func (s *paymentService) GetPaymentIntent(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	if err := validateID("intent id", intentID); err != nil {
		return nil, err
	}
	return s.intentRepo.FindPaymentIntentByID(ctx, intentID)
}

func (s *paymentService) ReconcilePendingPayments(ctx context.Context, grace time.Duration, limit int, userID string) (*dto.ReconcileSummary, error) {
	intents, err := s.intentRepo.ListIncompletePaymentIntents(ctx, s.now().UTC().Add(-grace), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete payment intents: %w", err)
	}

	summary := &dto.ReconcileSummary{Scanned: len(intents), Failed: []string{}}
	for _, intent := range intents {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if _, err := s.ResumePayment(ctx, intent.IntentID, userID); err != nil {
			s.LogError(ctx, err, "Payment reconciliation failed", slog.String("intent_id", intent.IntentID))
			summary.Failed = append(summary.Failed, intent.IntentID)
			continue
		}
		summary.Completed++
	}
	s.LogInfo(ctx, "Payment reconciliation finished",
		slog.Int("scanned", summary.Scanned),
		slog.Int("completed", summary.Completed),
		slog.Int("failed", len(summary.Failed)))
	return summary, nil
}

func (s *paymentService) findParty(ctx context.Context, kind domain.PartyKind, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, kind, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrPartyNotFound, kind, partyID)
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, partyID, err)
	}
	return party, nil
}

// advance runs every step the intent has not reached yet, in order.
// Completed steps stay committed when a later step fails.
func (s *paymentService) advance(ctx context.Context, run *paymentRun) (*domain.PaymentResult, error) {
	steps := []struct {
		stage domain.PaymentStage
		run   func(context.Context, *paymentRun) error
		load  func(context.Context, *paymentRun)
	}{
		{domain.StageInvoiceRecorded, s.recordInvoice, s.loadInvoice},
		{domain.StageTransactionRecorded, s.recordTransaction, s.loadTransaction},
		{domain.StageBalanceUpdated, s.updateBalance, nil},
	}

	for _, step := range steps {
		if stageOrder[run.intent.LastStage] >= stageOrder[step.stage] {
			if step.load != nil {
				step.load(ctx, run)
			}
			continue
		}
		if err := step.run(ctx, run); err != nil {
			return run.finish(), s.fail(ctx, run, step.stage, err)
		}
		s.markReached(ctx, run, step.stage)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("intent_id", run.intent.IntentID),
		slog.String("party_id", run.party.PartyID),
		slog.String("amount", run.intent.Amount.String()),
		slog.String("balance_after", run.result.BalanceAfter.String()))
	return run.finish(), nil
}

func (r *paymentRun) finish() *domain.PaymentResult {
	r.result.Intent = *r.intent
	return r.result
}

func (s *paymentService) recordInvoice(ctx context.Context, run *paymentRun) error {
	intent := run.intent
	if run.resuming {
		existing, err := s.invoiceRepo.FindInvoiceByID(ctx, intent.InvoiceID)
		if err == nil {
			run.result.Invoice = existing
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	now := s.now().UTC()
	method := intent.Method
	partyName := run.party.Name
	partyID := run.party.PartyID
	invoice := domain.Invoice{
		InvoiceID:     intent.InvoiceID,
		Kind:          intent.PartyKind.PaymentInvoiceKind(),
		InvoiceNumber: run.invoiceNumber,
		Status:        domain.StatusCompleted,
		Items:         json.RawMessage("[]"),
		Bills:         domain.CalculatePaymentBills(run.party.Balance, intent.Amount),
		PaymentMethod: &method,
		Date:          intent.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     run.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: run.userID,
		},
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = defaultInvoiceNumber(now)
	}
	if intent.PartyKind == domain.SupplierParty {
		invoice.SupplierID, invoice.SupplierName = &partyID, &partyName
	} else {
		invoice.CustomerID, invoice.CustomerName = &partyID, &partyName
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return err
	}
	run.result.Invoice = &invoice
	return nil
}

func (s *paymentService) recordTransaction(ctx context.Context, run *paymentRun) error {
	intent := run.intent
	if run.resuming {
		existing, err := s.transactionRepo.FindTransactionByID(ctx, intent.TransactionID)
		if err == nil {
			run.result.Transaction = existing
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	now := s.now().UTC()
	txnType, category := intent.PartyKind.JournalClassification()
	description := "Payment received from " + run.party.Name
	if intent.PartyKind == domain.SupplierParty {
		description = "Payment made to " + run.party.Name
	}
	txn := domain.Transaction{
		TransactionID: intent.TransactionID,
		Amount:        intent.Amount,
		PaymentMethod: intent.Method,
		Type:          txnType,
		Category:      category,
		Reference:     intent.InvoiceID,
		Description:   description,
		Date:          intent.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     run.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: run.userID,
		},
	}
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		return err
	}
	run.result.Transaction = &txn
	return nil
}

func (s *paymentService) updateBalance(ctx context.Context, run *paymentRun) error {
	intent := run.intent
	now := s.now().UTC()
	entry := domain.BalanceEntry{
		EntryID:       uuid.NewString(),
		PartyID:       run.party.PartyID,
		IntentID:      intent.IntentID,
		InvoiceID:     intent.InvoiceID,
		TransactionID: intent.TransactionID,
		Delta:         intent.Amount.Neg(),
		BalanceBefore: run.party.Balance,
		BalanceAfter:  run.balanceAfter,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     run.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: run.userID,
		},
	}

	err := s.partyRepo.ApplyBalanceEntry(ctx, entry)
	switch {
	case err == nil:
		run.result.BalanceAfter = run.balanceAfter
		return nil
	case errors.Is(err, apperrors.ErrDuplicate):
		// Applied by an earlier run whose intent update was lost.
		s.LogInfo(ctx, "Balance entry already applied", slog.String("intent_id", intent.IntentID))
		run.result.BalanceBefore = run.party.Balance.Add(intent.Amount)
		run.result.BalanceAfter = run.party.Balance
		return nil
	default:
		return err
	}
}

func (s *paymentService) loadInvoice(ctx context.Context, run *paymentRun) {
	if inv, err := s.invoiceRepo.FindInvoiceByID(ctx, run.intent.InvoiceID); err == nil {
		run.result.Invoice = inv
	}
}

func (s *paymentService) loadTransaction(ctx context.Context, run *paymentRun) {
	if txn, err := s.transactionRepo.FindTransactionByID(ctx, run.intent.TransactionID); err == nil {
		run.result.Transaction = txn
	}
}

// loadResult rebuilds the result of an intent from whatever records exist.
func (s *paymentService) loadResult(ctx context.Context, intent *domain.PaymentIntent) *domain.PaymentResult {
	run := &paymentRun{intent: intent, result: &domain.PaymentResult{}}
	s.loadInvoice(ctx, run)
	s.loadTransaction(ctx, run)
	if inv := run.result.Invoice; inv != nil {
		run.result.BalanceAfter = inv.Bills.Balance
		run.result.BalanceBefore = inv.Bills.Balance.Add(inv.Bills.Payed)
	}
	return run.finish()
}

func (s *paymentService) markReached(ctx context.Context, run *paymentRun, stage domain.PaymentStage) {
	intent := run.intent
	intent.Stage = stage
	intent.LastStage = stage
	intent.FailedStage = nil
	intent.LastError = nil
	intent.LastUpdatedAt = s.now().UTC()
	intent.LastUpdatedBy = run.userID
	if err := s.intentRepo.UpdatePaymentIntent(ctx, *intent); err != nil {
		// The step itself is durable; a resumed run detects it by id.
		s.LogError(ctx, err, "Failed to record payment stage",
			slog.String("intent_id", intent.IntentID),
			slog.String("stage", string(stage)))
	}
}

func (s *paymentService) fail(ctx context.Context, run *paymentRun, stage domain.PaymentStage, cause error) error {
	intent := run.intent
	msg := cause.Error()
	intent.Stage = domain.StageFailed
	intent.FailedStage = &stage
	intent.LastError = &msg
	intent.LastUpdatedAt = s.now().UTC()
	intent.LastUpdatedBy = run.userID

	s.LogError(ctx, cause, "Payment step failed",
		slog.String("intent_id", intent.IntentID),
		slog.String("failed_stage", string(stage)),
		slog.String("last_stage", string(intent.LastStage)))

	if err := s.intentRepo.UpdatePaymentIntent(ctx, *intent); err != nil {
		s.LogError(ctx, err, "Failed to record payment failure", slog.String("intent_id", intent.IntentID))
	}
	return &apperrors.StageError{Stage: string(stage), Err: cause}
}
