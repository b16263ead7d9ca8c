package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// LedgerRepository persists the imported ledger dataset. Rows only
// change through full replacement, so the write surface is delete-all
// plus batch insert.
type LedgerRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sqlite.DB, logger *zap.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves the full ledger dataset ordered by date
func (r *LedgerRepository) GetAll(ctx context.Context) ([]entity.LedgerRow, error) {
	query := `
		SELECT id, date, particulars, vch_type, vch_no, debit, credit, description
		FROM ledger_rows
		ORDER BY date, id
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db.DB).QueryContext(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return nil, fmt.Errorf("ledger_rows: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to list ledger rows", zap.Error(err))
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	defer rows.Close()

	var out []entity.LedgerRow
	for rows.Next() {
		var lr entity.LedgerRow
		if err := rows.Scan(
			&lr.ID,
			&lr.Date,
			&lr.Particulars,
			&lr.VoucherType,
			&lr.VoucherNumber,
			&lr.Debit,
			&lr.Credit,
			&lr.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// DeleteAll removes every stored ledger row
func (r *LedgerRepository) DeleteAll(ctx context.Context) error {
	if _, err := sqlite.ExecutorFrom(ctx, r.db.DB).ExecContext(ctx, "DELETE FROM ledger_rows"); err != nil {
		if schemaMissing(err) {
			return fmt.Errorf("ledger_rows: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to delete ledger rows", zap.Error(err))
		return fmt.Errorf("failed to delete ledger rows: %w", err)
	}
	return nil
}

// InsertBatch inserts a batch of ledger rows with a single statement
func (r *LedgerRepository) InsertBatch(ctx context.Context, batch []entity.LedgerRow) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ledger_rows (date, particulars, vch_type, vch_no, debit, credit, description) VALUES ")

	args := make([]interface{}, 0, len(batch)*7)
	for i, lr := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, lr.Date, lr.Particulars, lr.VoucherType, lr.VoucherNumber, lr.Debit, lr.Credit, lr.Description)
	}

	if _, err := sqlite.ExecutorFrom(ctx, r.db.DB).ExecContext(ctx, sb.String(), args...); err != nil {
		r.logger.Error("Failed to insert ledger batch", zap.Int("rows", len(batch)), zap.Error(err))
		return fmt.Errorf("failed to insert ledger batch: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside a storage transaction. Wrapping the
// delete-then-insert replace sequence here makes it all-or-nothing: a
// failed import leaves the prior dataset untouched.
func (r *LedgerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTransaction(ctx, fn)
}
