package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Payment, error)
	// SumByOrder total abonado a un pedido.
	SumByOrder(ctx context.Context, orderID string) (decimal.Decimal, error)
}
