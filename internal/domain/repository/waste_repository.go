package repository

import (
	"context"
	"time"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// WasteRepository puerto de persistencia para mermas (append-only).
type WasteRepository interface {
	Create(ctx context.Context, rec *entity.WasteRecord) error
	GetByID(ctx context.Context, id string) (*entity.WasteRecord, error)
	// ListByLot devuelve las mermas del lote con fecha <= until (nil = todas).
	ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.WasteRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.WasteRecord, error)
	// SetEvidencePath asocia el objeto de evidencia subido al bucket.
	SetEvidencePath(ctx context.Context, id, path string) error
}
