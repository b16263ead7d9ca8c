package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// PaymentRepository persists supplier payments
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new supplier payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new supplier payment
func (r *PaymentRepository) Create(ctx context.Context, p *entity.SupplierPayment) error {
	query := `
		INSERT INTO supplier_payments (date, supplier_name, amount, payment_mode, notes, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		p.Date,
		p.SupplierName,
		p.Amount,
		p.PaymentMode,
		p.Notes,
		p.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create supplier payment", zap.Error(err))
		return fmt.Errorf("failed to create supplier payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	p.ID = id
	return nil
}

// GetAll retrieves every supplier payment ordered by date
func (r *PaymentRepository) GetAll(ctx context.Context) ([]entity.SupplierPayment, error) {
	query := `
		SELECT id, date, supplier_name, amount, payment_mode, notes, created_by, created_at
		FROM supplier_payments
		ORDER BY date
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return nil, fmt.Errorf("supplier_payments: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to list supplier payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list supplier payments: %w", err)
	}
	defer rows.Close()

	var payments []entity.SupplierPayment
	for rows.Next() {
		var p entity.SupplierPayment
		if err := rows.Scan(
			&p.ID,
			&p.Date,
			&p.SupplierName,
			&p.Amount,
			&p.PaymentMode,
			&p.Notes,
			&p.CreatedBy,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan supplier payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Update rewrites an existing supplier payment
func (r *PaymentRepository) Update(ctx context.Context, p *entity.SupplierPayment) error {
	query := `
		UPDATE supplier_payments
		SET date = ?, supplier_name = ?, amount = ?, payment_mode = ?, notes = ?
		WHERE id = ?
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		p.Date,
		p.SupplierName,
		p.Amount,
		p.PaymentMode,
		p.Notes,
		p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update supplier payment", zap.Int64("id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to update supplier payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier payment %d not found", p.ID)
	}
	return nil
}

// Delete removes a supplier payment by ID
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx,
		"DELETE FROM supplier_payments WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete supplier payment", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete supplier payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier payment %d not found", id)
	}
	return nil
}
