package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// PaymentIntentReader defines read operations for payment intents
type PaymentIntentReader interface {
	FindPaymentIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error)

	// FindPaymentIntentByIdempotencyKey returns apperrors.ErrNotFound if no intent carries the key.
	FindPaymentIntentByIdempotencyKey(ctx context.Context, key string) (*domain.PaymentIntent, error)

	// ListIncompletePaymentIntents returns intents that have not reached BalanceUpdated and were
	// last touched before the given time, oldest first.
	ListIncompletePaymentIntents(ctx context.Context, updatedBefore time.Time, limit int) ([]domain.PaymentIntent, error)
}

// PaymentIntentWriter defines write operations for payment intents
type PaymentIntentWriter interface {
	// SavePaymentIntent inserts a new intent. Returns apperrors.ErrDuplicate on an idempotency key clash.
	SavePaymentIntent(ctx context.Context, intent domain.PaymentIntent) error

	// UpdatePaymentIntent persists stage, failure details and audit fields.
	UpdatePaymentIntent(ctx context.Context, intent domain.PaymentIntent) error
}

// PaymentIntentRepositoryFacade combines all payment intent repository interfaces
type PaymentIntentRepositoryFacade interface {
	PaymentIntentReader
	PaymentIntentWriter
}
