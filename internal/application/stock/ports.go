package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el registro
// del evento y el refresco del snapshot de disponibilidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		wasteRepo repository.WasteRepository,
		transferRepo repository.TransferRepository,
		usageRepo repository.BatchUsageRepository,
	) error) error
}

// BalanceComputer concilia el saldo de un lote contra su historial.
// Lo implementa el caso de uso de kardex.
type BalanceComputer interface {
	ComputeBalance(ctx context.Context, lotType, lotID string, asOf *time.Time) (decimal.Decimal, error)
}

// EvidenceStorage guarda archivos de evidencia de mermas y firma URLs
// de lectura temporales.
type EvidenceStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) error
	SignedURL(objectPath string) (string, error)
	// List devuelve las rutas de objeto bajo un prefijo.
	List(ctx context.Context, prefix string) ([]string, error)
}
