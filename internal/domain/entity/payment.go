package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "bank_transfer"
	PaymentMethodCard     = "card"
)

// Payment abono registrado contra un pedido.
type Payment struct {
	ID        string
	OrderID   string
	Method    string
	Amount    decimal.Decimal
	PaidAt    time.Time
	CreatedAt time.Time
	CreatedBy string
}
