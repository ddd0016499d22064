package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de un registro de traslado.
const (
	TransferDirectionOut = "transfer_out" // salida del lote origen
	TransferDirectionIn  = "transfer_in"  // entrada al lote destino
)

// TransferRecord es una cara de un traslado entre dos lotes. Cada traslado
// lógico escribe un par enlazado (out en el origen, in en el destino) que
// comparte TransferID pero son filas independientes. Append-only.
type TransferRecord struct {
	ID                 string
	TransferID         string // compartido por el par out/in
	LotType            string
	LotID              string
	CounterpartLotType string
	CounterpartLotID   string
	Date               time.Time
	Quantity           decimal.Decimal
	Direction          string // TransferDirectionOut | TransferDirectionIn
	Reason             string
	CreatedAt          time.Time
	CreatedBy          string
}
