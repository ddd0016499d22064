package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterWasteRequest alta de una merma.
type RegisterWasteRequest struct {
	LotType  string          `json:"lot_type"`
	LotID    string          `json:"lot_id"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
	Notes    string          `json:"notes"`
}

// RegisterTransferRequest traslado de cantidad entre dos lotes.
type RegisterTransferRequest struct {
	FromLotType string          `json:"from_lot_type"`
	FromLotID   string          `json:"from_lot_id"`
	ToLotType   string          `json:"to_lot_type"`
	ToLotID     string          `json:"to_lot_id"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

// RegisterBatchUsageRequest consumo de un lote por un batch.
type RegisterBatchUsageRequest struct {
	LotType  string          `json:"lot_type"`
	LotID    string          `json:"lot_id"`
	BatchID  string          `json:"batch_id"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateBatchRequest alta de un batch de producción.
type CreateBatchRequest struct {
	Code       string    `json:"code"`
	Notes      string    `json:"notes"`
	ProducedAt time.Time `json:"produced_at"`
}
