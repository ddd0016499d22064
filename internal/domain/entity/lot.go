package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lote: materia prima o producto recurrente. Determinan la tabla origen.
const (
	LotTypeRawMaterial      = "raw_material"
	LotTypeRecurringProduct = "recurring_product"
)

// Tipos de unidad de medida.
const (
	UnitKindWhole   = "whole"   // unidades enteras (piezas, bultos): no admite fracciones
	UnitKindDecimal = "decimal" // unidades continuas (kg, litros): 2 decimales
)

// ValidLotType indica si el discriminador de lote es conocido.
func ValidLotType(t string) bool {
	return t == LotTypeRawMaterial || t == LotTypeRecurringProduct
}

// Lot representa una cantidad recibida de materia prima o producto recurrente,
// identificada por un código de lote. QuantityReceived es inmutable tras la
// creación; QuantityAvailable es un snapshot cacheado que puede quedar
// desfasado del ledger real (solo se usa como pista, nunca como verdad).
type Lot struct {
	ID                string
	Type              string // LotTypeRawMaterial | LotTypeRecurringProduct
	Code              string
	Name              string
	Unit              string // ej: "piezas", "kg", "litros"
	UnitKind          string // UnitKindWhole | UnitKindDecimal
	QuantityReceived  decimal.Decimal
	QuantityAvailable decimal.Decimal // cache, mantenido al registrar eventos
	ReceivedAt        time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}
