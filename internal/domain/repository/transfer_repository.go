package repository

import (
	"context"
	"time"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// TransferRepository puerto de persistencia para traslados (append-only).
// Cada traslado lógico son dos filas (out/in) con el mismo TransferID.
type TransferRepository interface {
	Create(ctx context.Context, rec *entity.TransferRecord) error
	// ListByLot devuelve las caras de traslado del lote con fecha <= until
	// (nil = todas), tanto salientes como entrantes.
	ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.TransferRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.TransferRecord, error)
}
