package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_id, lot_type, lot_id, counterpart_lot_type,
	counterpart_lot_id, event_date, quantity, direction, reason, created_at, created_by`

// Create inserta una cara del traslado. El caller escribe ambas caras
// en la misma transacción.
func (r *TransferRepo) Create(ctx context.Context, rec *entity.TransferRecord) error {
	query := `
		INSERT INTO transfer_records (id, transfer_id, lot_type, lot_id,
			counterpart_lot_type, counterpart_lot_id, event_date, quantity,
			direction, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.TransferID, rec.LotType, rec.LotID,
		rec.CounterpartLotType, rec.CounterpartLotID, rec.Date, rec.Quantity,
		rec.Direction, rec.Reason, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// ListByLot caras de traslado del lote con fecha <= until (nil = todas).
func (r *TransferRepo) ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.TransferRecord, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_records
		WHERE lot_type = $1 AND lot_id = $2 AND ($3::timestamptz IS NULL OR event_date <= $3)
		ORDER BY event_date, created_at`
	rows, err := r.q.Query(ctx, query, lotType, lotID, until)
	if err != nil {
		return nil, fmt.Errorf("list transfers by lot: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

// List caras de traslado paginadas, más recientes primero.
func (r *TransferRepo) List(ctx context.Context, limit, offset int) ([]*entity.TransferRecord, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_records
		ORDER BY event_date DESC, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

func collectTransfers(rows pgx.Rows) ([]*entity.TransferRecord, error) {
	var recs []*entity.TransferRecord
	for rows.Next() {
		var rec entity.TransferRecord
		if err := rows.Scan(
			&rec.ID, &rec.TransferID, &rec.LotType, &rec.LotID, &rec.CounterpartLotType,
			&rec.CounterpartLotID, &rec.Date, &rec.Quantity, &rec.Direction,
			&rec.Reason, &rec.CreatedAt, &rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
