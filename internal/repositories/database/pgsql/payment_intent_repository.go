package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentIntentColumns = `intent_id, idempotency_key, party_id, party_kind, amount, method,
	payment_date, stage, last_stage, failed_stage, invoice_id, transaction_id, last_error,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentIntentRepository struct {
	BaseRepository
}

func newPgxPaymentIntentRepository(pool *pgxpool.Pool) portsrepo.PaymentIntentRepositoryFacade {
	return &PgxPaymentIntentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentIntentRepositoryFacade = (*PgxPaymentIntentRepository)(nil)

func scanPaymentIntent(row pgx.Row) (models.PaymentIntent, error) {
	var m models.PaymentIntent
	err := row.Scan(
		&m.IntentID,
		&m.IdempotencyKey,
		&m.PartyID,
		&m.PartyKind,
		&m.Amount,
		&m.Method,
		&m.PaymentDate,
		&m.Stage,
		&m.LastStage,
		&m.FailedStage,
		&m.InvoiceID,
		&m.TransactionID,
		&m.LastError,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentIntentRepository) findOne(ctx context.Context, where string, arg any) (*domain.PaymentIntent, error) {
	query := `SELECT ` + paymentIntentColumns + ` FROM payment_intents WHERE ` + where + ` = $1;`
	m, err := scanPaymentIntent(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment intent", err)
	}
	intent := mapping.ToDomainPaymentIntent(m)
	return &intent, nil
}

// FindPaymentIntentByID retrieves an intent by its ID.
func (r *PgxPaymentIntentRepository) FindPaymentIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	return r.findOne(ctx, "intent_id", intentID)
}

// FindPaymentIntentByIdempotencyKey retrieves the intent created with the given key.
func (r *PgxPaymentIntentRepository) FindPaymentIntentByIdempotencyKey(ctx context.Context, key string) (*domain.PaymentIntent, error) {
	return r.findOne(ctx, "idempotency_key", key)
}

// ListIncompletePaymentIntents returns stalled intents, oldest first.
func (r *PgxPaymentIntentRepository) ListIncompletePaymentIntents(ctx context.Context, updatedBefore time.Time, limit int) ([]domain.PaymentIntent, error) {
	query := `
		SELECT ` + paymentIntentColumns + `
		FROM payment_intents
		WHERE stage <> $1 AND last_updated_at < $2
		ORDER BY last_updated_at
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.StageBalanceUpdated), updatedBefore, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query incomplete payment intents", err)
	}
	defer rows.Close()

	intents := []domain.PaymentIntent{}
	for rows.Next() {
		m, err := scanPaymentIntent(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment intent row", err)
		}
		intents = append(intents, mapping.ToDomainPaymentIntent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment intent rows", err)
	}
	return intents, nil
}

// SavePaymentIntent inserts a new intent.
func (r *PgxPaymentIntentRepository) SavePaymentIntent(ctx context.Context, intent domain.PaymentIntent) error {
	m := mapping.ToModelPaymentIntent(intent)
	query := `
		INSERT INTO payment_intents (` + paymentIntentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.IntentID,
		m.IdempotencyKey,
		m.PartyID,
		m.PartyKind,
		m.Amount,
		m.Method,
		m.PaymentDate,
		m.Stage,
		m.LastStage,
		m.FailedStage,
		m.InvoiceID,
		m.TransactionID,
		m.LastError,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert payment intent "+m.IntentID, err)
	}
	return nil
}

// UpdatePaymentIntent persists the stage and failure details of an intent.
func (r *PgxPaymentIntentRepository) UpdatePaymentIntent(ctx context.Context, intent domain.PaymentIntent) error {
	m := mapping.ToModelPaymentIntent(intent)
	query := `
		UPDATE payment_intents
		SET stage = $1, last_stage = $2, failed_stage = $3, last_error = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE intent_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Stage,
		m.LastStage,
		m.FailedStage,
		m.LastError,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.IntentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment intent "+m.IntentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
