package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// FindPartyByID retrieves a customer or supplier.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, kind domain.PartyKind, partyID string) (*domain.Party, error) {
	query := `
		SELECT party_id, kind, name, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM parties
		WHERE party_id = $1 AND kind = $2;
	`
	var m models.Party
	err := r.Pool.QueryRow(ctx, query, partyID, string(kind)).Scan(
		&m.PartyID,
		&m.Kind,
		&m.Name,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find party by ID "+partyID, err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

// ApplyBalanceEntry records the entry and swaps the balance in one transaction.
// The entry insert is keyed by intent id, so a replayed saga step reports ErrDuplicate
// without touching the balance.
func (r *PgxPartyRepository) ApplyBalanceEntry(ctx context.Context, entry domain.BalanceEntry) error {
	m := mapping.ToModelBalanceEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insert := `
		INSERT INTO party_balance_entries (
			entry_id, party_id, intent_id, invoice_id, transaction_id,
			delta, balance_before, balance_after,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (intent_id) DO NOTHING;
	`
	tag, err := tx.Exec(ctx, insert,
		m.EntryID,
		m.PartyID,
		m.IntentID,
		m.InvoiceID,
		m.TransactionID,
		m.Delta,
		m.BalanceBefore,
		m.BalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert balance entry for intent "+m.IntentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}

	update := `
		UPDATE parties
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $4 AND balance = $5;
	`
	tag, err = tx.Exec(ctx, update, m.BalanceAfter, m.LastUpdatedAt, m.LastUpdatedBy, m.PartyID, m.BalanceBefore)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance of party "+m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// ListBalanceEntries returns the balance history of a party, oldest first.
func (r *PgxPartyRepository) ListBalanceEntries(ctx context.Context, partyID string) ([]domain.BalanceEntry, error) {
	query := `
		SELECT entry_id, party_id, intent_id, invoice_id, transaction_id,
		       delta, balance_before, balance_after,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM party_balance_entries
		WHERE party_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, partyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance entries for party "+partyID, err)
	}
	defer rows.Close()

	entries := []domain.BalanceEntry{}
	for rows.Next() {
		var m models.BalanceEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.PartyID,
			&m.IntentID,
			&m.InvoiceID,
			&m.TransactionID,
			&m.Delta,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance entry for party "+partyID, err)
		}
		entries = append(entries, mapping.ToDomainBalanceEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance entries for party "+partyID, err)
	}
	return entries, nil
}
