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

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implementación de WasteRepository sobre PostgreSQL (usable con pool o tx).
type WasteRepo struct {
	q Querier
}

// NewWasteRepository construye el adaptador de mermas. Pasar pool o tx (Querier).
func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

const wasteColumns = `id, lot_type, lot_id, event_date, quantity, reason, notes,
	COALESCE(evidence_path, ''), created_at, created_by`

// Create inserta la merma. Las mermas son append-only: no hay update ni delete.
func (r *WasteRepo) Create(ctx context.Context, rec *entity.WasteRecord) error {
	query := `
		INSERT INTO waste_records (id, lot_type, lot_id, event_date, quantity,
			reason, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.LotType, rec.LotID, rec.Date, rec.Quantity,
		rec.Reason, rec.Notes, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert waste: %w", err)
	}
	return nil
}

func scanWaste(row pgx.Row) (*entity.WasteRecord, error) {
	var rec entity.WasteRecord
	err := row.Scan(
		&rec.ID, &rec.LotType, &rec.LotID, &rec.Date, &rec.Quantity,
		&rec.Reason, &rec.Notes, &rec.EvidencePath, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByID devuelve nil, nil si la merma no existe.
func (r *WasteRepo) GetByID(ctx context.Context, id string) (*entity.WasteRecord, error) {
	query := `SELECT ` + wasteColumns + ` FROM waste_records WHERE id = $1`
	rec, err := scanWaste(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waste: %w", err)
	}
	return rec, nil
}

// ListByLot mermas del lote con fecha <= until (nil = todas).
func (r *WasteRepo) ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.WasteRecord, error) {
	query := `
		SELECT ` + wasteColumns + `
		FROM waste_records
		WHERE lot_type = $1 AND lot_id = $2 AND ($3::timestamptz IS NULL OR event_date <= $3)
		ORDER BY event_date, created_at`
	rows, err := r.q.Query(ctx, query, lotType, lotID, until)
	if err != nil {
		return nil, fmt.Errorf("list waste by lot: %w", err)
	}
	defer rows.Close()
	return collectWaste(rows)
}

// List mermas paginadas, más recientes primero.
func (r *WasteRepo) List(ctx context.Context, limit, offset int) ([]*entity.WasteRecord, error) {
	query := `
		SELECT ` + wasteColumns + `
		FROM waste_records
		ORDER BY event_date DESC, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste: %w", err)
	}
	defer rows.Close()
	return collectWaste(rows)
}

func collectWaste(rows pgx.Rows) ([]*entity.WasteRecord, error) {
	var recs []*entity.WasteRecord
	for rows.Next() {
		rec, err := scanWaste(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SetEvidencePath asocia el objeto de evidencia subido al bucket.
func (r *WasteRepo) SetEvidencePath(ctx context.Context, id, path string) error {
	tag, err := r.q.Exec(ctx, `UPDATE waste_records SET evidence_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("set evidence path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: merma %s", domain.ErrNotFound, id)
	}
	return nil
}
