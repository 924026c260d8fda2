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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.Kind,
		&m.InvoiceNumber,
		&m.Status,
		&m.Shift,
		&m.CustomerID,
		&m.CustomerName,
		&m.SupplierID,
		&m.SupplierName,
		&m.Items,
		&m.BillsTotal,
		&m.BillsTax,
		&m.BillsTotalWithTax,
		&m.BillsPayed,
		&m.BillsBalance,
		&m.PaymentMethod,
		&m.InvoiceDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.Kind,
		m.InvoiceNumber,
		m.Status,
		m.Shift,
		m.CustomerID,
		m.CustomerName,
		m.SupplierID,
		m.SupplierName,
		m.Items,
		m.BillsTotal,
		m.BillsTax,
		m.BillsTotalWithTax,
		m.BillsPayed,
		m.BillsBalance,
		m.PaymentMethod,
		m.InvoiceDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// UpdateInvoice persists status, bills and audit fields.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $1, bills_total = $2, bills_tax = $3, bills_total_with_tax = $4,
		    bills_payed = $5, bills_balance = $6, last_updated_at = $7, last_updated_by = $8
		WHERE invoice_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.BillsTotal,
		m.BillsTax,
		m.BillsTotalWithTax,
		m.BillsPayed,
		m.BillsBalance,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListInvoices returns one page of invoices matching the filter.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	query, args := buildInvoiceQuery(filter).selectSQL(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return mapping.ToDomainInvoices(invoices), nil
}

// CountInvoices returns the number of invoices matching the filter, ignoring the page window.
func (r *PgxInvoiceRepository) CountInvoices(ctx context.Context, filter domain.InvoiceFilter) (int, error) {
	query, args := buildInvoiceQuery(filter).countSQL()
	var total int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count invoices", err)
	}
	return total, nil
}
