package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteRecord es un evento de merma (pérdida, daño, vencimiento) sobre un lote.
// Append-only: no se edita ni se borra.
type WasteRecord struct {
	ID           string
	LotType      string
	LotID        string
	Date         time.Time
	Quantity     decimal.Decimal
	Reason       string
	Notes        string
	EvidencePath string // objeto en el bucket de evidencias (opcional)
	CreatedAt    time.Time
	CreatedBy    string
}
