package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
	"github.com/javrojas/Almacen-api/pkg/textnorm"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
// El tipo de lote discrimina la tabla: materias primas y productos
// recurrentes viven en tablas gemelas con el mismo esquema.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

func lotTable(lotType string) string {
	if lotType == entity.LotTypeRecurringProduct {
		return "recurring_product_lots"
	}
	return "raw_material_lots"
}

// Create inserta el lote. search_text guarda código y nombre normalizados
// para búsqueda sin acentos.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, code, name, unit, unit_kind, quantity_received,
			quantity_available, received_at, search_text, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, lotTable(lot.Type))
	searchText := textnorm.Normalize(lot.Code + " " + lot.Name)
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.Code, lot.Name, lot.Unit, lot.UnitKind, lot.QuantityReceived,
		lot.QuantityAvailable, lot.ReceivedAt, searchText, lot.CreatedAt, lot.UpdatedAt, lot.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el lote no existe.
func (r *LotRepo) GetByID(ctx context.Context, lotType, id string) (*entity.Lot, error) {
	query := fmt.Sprintf(`
		SELECT id, code, name, unit, unit_kind, quantity_received,
			quantity_available, received_at, created_at, updated_at, created_by
		FROM %s WHERE id = $1`, lotTable(lotType))
	lot := entity.Lot{Type: lotType}
	err := r.q.QueryRow(ctx, query, id).Scan(
		&lot.ID, &lot.Code, &lot.Name, &lot.Unit, &lot.UnitKind, &lot.QuantityReceived,
		&lot.QuantityAvailable, &lot.ReceivedAt, &lot.CreatedAt, &lot.UpdatedAt, &lot.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &lot, nil
}

// List filtra por search_text (término ya normalizado por el caller).
func (r *LotRepo) List(ctx context.Context, lotType, search string, limit, offset int) ([]*entity.Lot, error) {
	query := fmt.Sprintf(`
		SELECT id, code, name, unit, unit_kind, quantity_received,
			quantity_available, received_at, created_at, updated_at, created_by
		FROM %s
		WHERE ($1 = '' OR search_text LIKE '%%' || $1 || '%%')
		ORDER BY received_at DESC, code
		LIMIT $2 OFFSET $3`, lotTable(lotType))
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		lot := entity.Lot{Type: lotType}
		if err := rows.Scan(
			&lot.ID, &lot.Code, &lot.Name, &lot.Unit, &lot.UnitKind, &lot.QuantityReceived,
			&lot.QuantityAvailable, &lot.ReceivedAt, &lot.CreatedAt, &lot.UpdatedAt, &lot.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &lot)
	}
	return lots, rows.Err()
}

// UpdateCachedAvailable refresca el snapshot quantity_available.
func (r *LotRepo) UpdateCachedAvailable(ctx context.Context, lotType, id string, qty decimal.Decimal) error {
	query := fmt.Sprintf(`
		UPDATE %s SET quantity_available = $2, updated_at = now()
		WHERE id = $1`, lotTable(lotType))
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("update lot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}
