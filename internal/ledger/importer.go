package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/normalize"
	"github.com/jaymalhar/supplyledger/pkg/utils"
	"go.uber.org/zap"
)

// DefaultBatchSize is the insert chunk size used during replace.
const DefaultBatchSize = 100

// Store is the ledger dataset contract the importer commits through
type Store interface {
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, rows []entity.LedgerRow) error
}

// SkippedRow describes one uploaded row excluded during parsing.
// Surfaced alongside the preview so callers can report leniency.
type SkippedRow struct {
	Index       int    `json:"index"` // zero-based position in the upload
	Particulars string `json:"particulars,omitempty"`
	Reason      string `json:"reason"`
}

// Preview is a validated, uncommitted import result
type Preview struct {
	Token   string             `json:"token"`
	Rows    []entity.LedgerRow `json:"rows"`
	Skipped []SkippedRow       `json:"skipped,omitempty"`
}

// Importer parses uploaded statement tables and replaces the stored
// ledger dataset on confirmation.
type Importer struct {
	store     Store
	batchSize int
	logger    *zap.Logger
}

// NewImporter creates a new ledger importer
func NewImporter(store Store, batchSize int, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		store:     store,
		batchSize: batchSize,
		logger:    logger,
	}
}

// cleanCell trims a text cell and strips control characters that
// spreadsheet exports sometimes embed.
func cleanCell(s string) string {
	return utils.SanitizeString(strings.TrimSpace(s))
}

// Parse maps, filters and normalizes an uploaded table into a preview.
// Header/footer pseudo-rows and rows without a usable date are dropped
// and reported in Preview.Skipped; an upload yielding zero usable rows
// fails with ErrNoUsableRows. Nothing is committed.
func (i *Importer) Parse(table []map[string]string) (*Preview, error) {
	preview := &Preview{Token: uuid.NewString()}

	for idx, raw := range table {
		cols := MapColumns(raw)
		particulars := cleanCell(raw[cols.Particulars])

		if IsHeaderFooterRow(particulars) {
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Index:       idx,
				Particulars: particulars,
				Reason:      "header or footer row",
			})
			continue
		}

		date, ok := normalize.Date(raw[cols.Date])
		if !ok {
			// Leniency by policy: the row is dropped, not fatal.
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Index:       idx,
				Particulars: particulars,
				Reason:      fmt.Sprintf("unparseable date %q", strings.TrimSpace(raw[cols.Date])),
			})
			i.logger.Warn("Dropping ledger row with unparseable date",
				zap.Int("row", idx),
				zap.String("date", raw[cols.Date]))
			continue
		}

		preview.Rows = append(preview.Rows, entity.LedgerRow{
			Date:          date,
			Particulars:   particulars,
			VoucherType:   cleanCell(raw[cols.VoucherType]),
			VoucherNumber: cleanCell(raw[cols.VoucherNumber]),
			Debit:         normalize.Number(raw[cols.Debit]),
			Credit:        normalize.Number(raw[cols.Credit]),
			Description:   cleanCell(raw[cols.Description]),
		})
	}

	if len(preview.Rows) == 0 {
		return nil, fmt.Errorf("%w: %d rows uploaded, %d excluded",
			ErrNoUsableRows, len(table), len(preview.Skipped))
	}

	i.logger.Info("Ledger statement parsed",
		zap.String("token", preview.Token),
		zap.Int("rows", len(preview.Rows)),
		zap.Int("skipped", len(preview.Skipped)))

	return preview, nil
}

// Commit replaces the entire stored dataset with rows: delete-all, then
// sequential fixed-size batch inserts. A batch failure after the delete
// is reported as PartialCommitError: earlier batches stay committed and
// the prior dataset is gone. No retries, no rollback here; wrap the call
// in a store transaction where the storage layer supports one.
func (i *Importer) Commit(ctx context.Context, rows []entity.LedgerRow) error {
	if err := i.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete prior ledger dataset: %w", err)
	}

	total := (len(rows) + i.batchSize - 1) / i.batchSize

	for n := 0; n*i.batchSize < len(rows); n++ {
		start := n * i.batchSize
		end := start + i.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		if err := i.store.InsertBatch(ctx, rows[start:end]); err != nil {
			i.logger.Error("Ledger batch insert failed",
				zap.Int("batch", n+1),
				zap.Int("batches_total", total),
				zap.Error(err))
			return &PartialCommitError{
				BatchesCommitted: n,
				BatchesTotal:     total,
				RowsCommitted:    start,
				Err:              err,
			}
		}
	}

	i.logger.Info("Ledger dataset replaced",
		zap.Int("rows", len(rows)),
		zap.Int("batches", total))

	return nil
}
