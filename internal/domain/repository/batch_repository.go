package repository

import (
	"context"
	"time"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// BatchRepository puerto de persistencia para batches de producción.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Batch, error)
}

// BatchUsageRepository puerto para los eventos de consumo de lotes.
type BatchUsageRepository interface {
	Create(ctx context.Context, rec *entity.BatchUsageRecord) error
	// ListByLot devuelve los consumos del lote con fecha <= until.
	// until nil = sin corte (todos los eventos).
	ListByLot(ctx context.Context, lotID string, until *time.Time) ([]*entity.BatchUsageRecord, error)
}
