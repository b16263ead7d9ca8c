package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// InvoiceRepository persists metadata about rendered invoice artifacts
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new generated invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Create records metadata for a freshly rendered invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.GeneratedInvoice) error {
	query := `
		INSERT INTO generated_invoices (month, category, total_amount, file_path)
		VALUES (?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		inv.Month,
		inv.Category,
		inv.TotalAmount,
		inv.FilePath,
	)
	if err != nil {
		r.logger.Error("Failed to record generated invoice", zap.Error(err))
		return fmt.Errorf("failed to record generated invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	inv.ID = id
	return nil
}

// GetAll retrieves generation history, newest first
func (r *InvoiceRepository) GetAll(ctx context.Context) ([]entity.GeneratedInvoice, error) {
	query := `
		SELECT id, month, category, total_amount, file_path, created_at
		FROM generated_invoices
		ORDER BY created_at DESC
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return nil, fmt.Errorf("generated_invoices: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to list generated invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list generated invoices: %w", err)
	}
	defer rows.Close()

	var out []entity.GeneratedInvoice
	for rows.Next() {
		var inv entity.GeneratedInvoice
		if err := rows.Scan(
			&inv.ID,
			&inv.Month,
			&inv.Category,
			&inv.TotalAmount,
			&inv.FilePath,
			&inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generated invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
