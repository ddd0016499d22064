package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un batch de producción.
const (
	BatchStatusOpen   = "open"
	BatchStatusClosed = "closed"
)

// Batch representa una corrida de producción que consume lotes de materia prima.
type Batch struct {
	ID         string
	Code       string
	Status     string
	Notes      string
	ProducedAt time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

// BatchUsageRecord es un evento de consumo de un lote por un batch.
// Inmutable una vez escrito; el motor de saldos solo lo lee.
type BatchUsageRecord struct {
	ID        string
	LotID     string
	BatchID   string
	Date      time.Time
	Quantity  decimal.Decimal
	Locked    bool   // bloqueado por control de calidad
	QAStatus  string // pending, approved, rejected
	CreatedAt time.Time
	CreatedBy string
}
