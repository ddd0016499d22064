package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura emitida sobre un pedido.
type Invoice struct {
	ID         string
	Number     string
	OrderID    string
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	IssuedAt   time.Time
	CreatedAt  time.Time
	CreatedBy  string
}
