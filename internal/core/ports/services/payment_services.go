package services

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
)

// PaymentRecorderSvc runs the payment saga
type PaymentRecorderSvc interface {
	// RecordPayment records a payment invoice, a journal entry and a party balance update.
	// When a step fails after validation the partial result is returned alongside an
	// *apperrors.StageError naming the failed stage.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, authorID string) (*domain.PaymentResult, error)

	// ResumePayment re-drives an incomplete intent from its last completed stage.
	ResumePayment(ctx context.Context, intentID string, userID string) (*domain.PaymentResult, error)
}

// PaymentReaderSvc reads saga state
type PaymentReaderSvc interface {
	GetPaymentIntent(ctx context.Context, intentID string) (*domain.PaymentIntent, error)
}

// PaymentReconcilerSvc resumes stalled sagas in bulk
type PaymentReconcilerSvc interface {
	// ReconcilePendingPayments resumes up to limit intents that have been incomplete for at least grace.
	ReconcilePendingPayments(ctx context.Context, grace time.Duration, limit int, userID string) (*dto.ReconcileSummary, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentRecorderSvc
	PaymentReaderSvc
	PaymentReconcilerSvc
}
