package repository

import (
	"context"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos de venta.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
