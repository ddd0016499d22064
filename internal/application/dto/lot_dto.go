package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest registro de recepción de un lote.
type CreateLotRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	UnitKind         string          `json:"unit_kind"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	ReceivedAt       time.Time       `json:"received_at"`
}

// BalanceResponse saldo conciliado de un lote.
type BalanceResponse struct {
	LotType string          `json:"lot_type"`
	LotID   string          `json:"lot_id"`
	AsOf    *time.Time      `json:"as_of,omitempty"`
	Balance decimal.Decimal `json:"balance"`
	Unit    string          `json:"unit"`
}
