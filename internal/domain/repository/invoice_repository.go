package repository

import (
	"context"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// NextNumber consecutivo de facturación.
	NextNumber(ctx context.Context) (int64, error)
}
