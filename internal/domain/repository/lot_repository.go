package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// LotRepository puerto de persistencia para lotes (materias primas y
// productos recurrentes, el tipo discrimina la tabla).
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	// GetByID devuelve nil, nil si el lote no existe.
	GetByID(ctx context.Context, lotType, id string) (*entity.Lot, error)
	// List filtra por búsqueda normalizada sobre código y nombre.
	List(ctx context.Context, lotType, search string, limit, offset int) ([]*entity.Lot, error)
	// UpdateCachedAvailable refresca el snapshot quantity_available.
	// Solo los registradores de eventos deben llamarlo.
	UpdateCachedAvailable(ctx context.Context, lotType, id string, qty decimal.Decimal) error
}
