package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest alta de un pedido de venta.
type CreateOrderRequest struct {
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Notes        string          `json:"notes"`
}

// RegisterPaymentRequest abono a un pedido.
type RegisterPaymentRequest struct {
	OrderID string          `json:"order_id"`
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	PaidAt  time.Time       `json:"paid_at"`
}

// CreateInvoiceRequest emisión de factura sobre un pedido.
type CreateInvoiceRequest struct {
	OrderID string          `json:"order_id"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}
