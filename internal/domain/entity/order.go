package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de venta.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order pedido de venta (CRUD directo, sin lógica derivada).
type Order struct {
	ID           string
	CustomerName string
	Status       string
	Total        decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	CreatedBy    string
}
