// Package repository implements the sqlite record store.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// DeliveryRepository persists delivery records
type DeliveryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeliveryRepository creates a new delivery record repository
func NewDeliveryRepository(db *sql.DB, logger *zap.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new delivery record
func (r *DeliveryRepository) Create(ctx context.Context, rec *entity.DeliveryRecord) error {
	query := `
		INSERT INTO delivery_records (
			date, challan_number, material, quantity, unit,
			vehicle_number, site_name, phase, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.Date,
		rec.ChallanNumber,
		rec.Material,
		rec.Quantity,
		rec.Unit,
		rec.VehicleNumber,
		rec.SiteName,
		rec.Phase,
		rec.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create delivery record", zap.Error(err))
		return fmt.Errorf("failed to create delivery record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	rec.ID = id
	return nil
}

// GetAll retrieves every delivery record ordered by date then challan number
func (r *DeliveryRepository) GetAll(ctx context.Context) ([]entity.DeliveryRecord, error) {
	query := `
		SELECT id, date, challan_number, material, quantity, unit,
			vehicle_number, site_name, phase, created_by, created_at
		FROM delivery_records
		ORDER BY date, challan_number
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return nil, fmt.Errorf("delivery_records: %w", ErrSchemaMissing)
		}
		r.logger.Error("Failed to list delivery records", zap.Error(err))
		return nil, fmt.Errorf("failed to list delivery records: %w", err)
	}
	defer rows.Close()

	var records []entity.DeliveryRecord
	for rows.Next() {
		var rec entity.DeliveryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.ChallanNumber,
			&rec.Material,
			&rec.Quantity,
			&rec.Unit,
			&rec.VehicleNumber,
			&rec.SiteName,
			&rec.Phase,
			&rec.CreatedBy,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetByID retrieves a delivery record by ID, nil when absent
func (r *DeliveryRepository) GetByID(ctx context.Context, id int64) (*entity.DeliveryRecord, error) {
	query := `
		SELECT id, date, challan_number, material, quantity, unit,
			vehicle_number, site_name, phase, created_by, created_at
		FROM delivery_records
		WHERE id = ?
	`

	var rec entity.DeliveryRecord
	err := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Date,
		&rec.ChallanNumber,
		&rec.Material,
		&rec.Quantity,
		&rec.Unit,
		&rec.VehicleNumber,
		&rec.SiteName,
		&rec.Phase,
		&rec.CreatedBy,
		&rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get delivery record", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get delivery record: %w", err)
	}
	return &rec, nil
}

// Update rewrites an existing delivery record
func (r *DeliveryRepository) Update(ctx context.Context, rec *entity.DeliveryRecord) error {
	query := `
		UPDATE delivery_records
		SET date = ?, challan_number = ?, material = ?, quantity = ?, unit = ?,
			vehicle_number = ?, site_name = ?, phase = ?
		WHERE id = ?
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.Date,
		rec.ChallanNumber,
		rec.Material,
		rec.Quantity,
		rec.Unit,
		rec.VehicleNumber,
		rec.SiteName,
		rec.Phase,
		rec.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update delivery record", zap.Int64("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to update delivery record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delivery record %d not found", rec.ID)
	}
	return nil
}

// Delete removes a delivery record by ID
func (r *DeliveryRepository) Delete(ctx context.Context, id int64) error {
	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx,
		"DELETE FROM delivery_records WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete delivery record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete delivery record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delivery record %d not found", id)
	}
	return nil
}
