package ledger

import (
	"context"
	"time"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// Puertos mínimos que necesita el cálculo de saldos. Los repositorios
// de postgres los satisfacen directamente.

type lotReader interface {
	GetByID(ctx context.Context, lotType, id string) (*entity.Lot, error)
}

type usageReader interface {
	ListByLot(ctx context.Context, lotID string, until *time.Time) ([]*entity.BatchUsageRecord, error)
}

type wasteReader interface {
	ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.WasteRecord, error)
}

type transferReader interface {
	ListByLot(ctx context.Context, lotType, lotID string, until *time.Time) ([]*entity.TransferRecord, error)
}

// StatementPDFGenerator renderiza el kardex de un lote como PDF.
type StatementPDFGenerator interface {
	GenerateStatement(st *Statement) ([]byte, error)
}
