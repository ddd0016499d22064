package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)
var _ repository.BatchUsageRepository = (*BatchUsageRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de batches. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta el batch.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, code, status, notes, produced_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, b.ID, b.Code, b.Status, b.Notes, b.ProducedAt, b.CreatedAt, b.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el batch no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, code, status, notes, produced_at, created_at, created_by
		FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Code, &b.Status, &b.Notes, &b.ProducedAt, &b.CreatedAt, &b.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// List batches paginados, más recientes primero.
func (r *BatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT id, code, status, notes, produced_at, created_at, created_by
		FROM batches
		ORDER BY produced_at DESC, code
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var bs []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Code, &b.Status, &b.Notes, &b.ProducedAt, &b.CreatedAt, &b.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		bs = append(bs, &b)
	}
	return bs, rows.Err()
}

// BatchUsageRepo implementación de BatchUsageRepository sobre PostgreSQL (usable con pool o tx).
type BatchUsageRepo struct {
	q Querier
}

// NewBatchUsageRepository construye el adaptador de consumos. Pasar pool o tx (Querier).
func NewBatchUsageRepository(q Querier) *BatchUsageRepo {
	return &BatchUsageRepo{q: q}
}

// Create inserta el consumo. Los consumos son append-only.
func (r *BatchUsageRepo) Create(ctx context.Context, rec *entity.BatchUsageRecord) error {
	query := `
		INSERT INTO batch_usage_records (id, lot_id, batch_id, event_date, quantity,
			locked, qa_status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	qa := rec.QAStatus
	if qa == "" {
		qa = "pending"
	}
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.LotID, rec.BatchID, rec.Date, rec.Quantity,
		rec.Locked, qa, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert batch usage: %w", err)
	}
	return nil
}

// ListByLot consumos del lote con fecha <= until (nil = todos).
func (r *BatchUsageRepo) ListByLot(ctx context.Context, lotID string, until *time.Time) ([]*entity.BatchUsageRecord, error) {
	query := `
		SELECT id, lot_id, batch_id, event_date, quantity, locked, qa_status, created_at, created_by
		FROM batch_usage_records
		WHERE lot_id = $1 AND ($2::timestamptz IS NULL OR event_date <= $2)
		ORDER BY event_date, created_at`
	rows, err := r.q.Query(ctx, query, lotID, until)
	if err != nil {
		return nil, fmt.Errorf("list batch usage: %w", err)
	}
	defer rows.Close()

	var recs []*entity.BatchUsageRecord
	for rows.Next() {
		var rec entity.BatchUsageRecord
		if err := rows.Scan(
			&rec.ID, &rec.LotID, &rec.BatchID, &rec.Date, &rec.Quantity,
			&rec.Locked, &rec.QAStatus, &rec.CreatedAt, &rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan batch usage: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
