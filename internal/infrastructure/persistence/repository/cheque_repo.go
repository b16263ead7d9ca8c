package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// ChequeRepository persists cheque entries received from parties
type ChequeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChequeRepository creates a new cheque repository
func NewChequeRepository(db *sql.DB, logger *zap.Logger) *ChequeRepository {
	return &ChequeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a cheque entry and assigns its generated id
func (r *ChequeRepository) Create(ctx context.Context, cheque *entity.ChequeEntry) error {
	query := `
		INSERT INTO cheque_entries (date, party_name, cheque_number, bank_name, amount, status, file_path, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		cheque.Date,
		cheque.PartyName,
		cheque.ChequeNumber,
		cheque.BankName,
		cheque.Amount,
		cheque.Status,
		cheque.FilePath,
		cheque.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create cheque entry", zap.Error(err))
		return fmt.Errorf("failed to create cheque entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	cheque.ID = id
	return nil
}

// GetAll retrieves all cheque entries, most recent cheque date first
func (r *ChequeRepository) GetAll(ctx context.Context) ([]entity.ChequeEntry, error) {
	query := `
		SELECT id, date, party_name, cheque_number, bank_name, amount, status, file_path, created_by, created_at
		FROM cheque_entries
		ORDER BY date DESC
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return nil, fmt.Errorf("cheque_entries: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to list cheque entries", zap.Error(err))
		return nil, fmt.Errorf("failed to list cheque entries: %w", err)
	}
	defer rows.Close()

	var out []entity.ChequeEntry
	for rows.Next() {
		var c entity.ChequeEntry
		if err := rows.Scan(
			&c.ID,
			&c.Date,
			&c.PartyName,
			&c.ChequeNumber,
			&c.BankName,
			&c.Amount,
			&c.Status,
			&c.FilePath,
			&c.CreatedBy,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cheque entry: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus moves a cheque between Pending, Cleared and Bounced
func (r *ChequeRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE cheque_entries SET status = ? WHERE id = ?`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update cheque status", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update cheque status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cheque entry %d not found", id)
	}
	return nil
}

// Delete removes a cheque entry by id
func (r *ChequeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cheque_entries WHERE id = ?`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete cheque entry", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete cheque entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cheque entry %d not found", id)
	}
	return nil
}
