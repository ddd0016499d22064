// Package ledger implementa la conciliación de saldos de lotes (servicio de
// dominio puro): neto = recibido − consumos − mermas − traslados salientes +
// traslados entrantes, con redondeo según el tipo de unidad.
//
// Nota sobre eventos del mismo día: el corte por fecha es inclusivo (<=), por
// lo que "antes/después" de un evento no puede derivarse solo de la fecha
// cuando dos traslados caen el mismo día. BalanceAroundEvent revierte
// únicamente el delta del evento que el caller pasa; un número de secuencia
// por evento resolvería el empate pero no existe en el modelo de datos.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// Movements acumula las sumas de cada flujo de eventos de un lote.
type Movements struct {
	Consumed       decimal.Decimal // consumos de batches
	Wasted         decimal.Decimal // mermas
	TransferredOut decimal.Decimal // traslados salientes
	TransferredIn  decimal.Decimal // traslados entrantes
}

// Net aplica el neto contable sobre la cantidad recibida, sin redondear.
func (m Movements) Net(received decimal.Decimal) decimal.Decimal {
	return received.
		Sub(m.Consumed).
		Sub(m.Wasted).
		Sub(m.TransferredOut).
		Add(m.TransferredIn)
}

// Balance calcula el saldo de un lote: neto redondeado según la unidad.
// Un resultado negativo indica datos inconsistentes en el backend y se
// devuelve tal cual; recortarlo a cero ocultaría el problema.
func Balance(received decimal.Decimal, m Movements, unitKind string) decimal.Decimal {
	return Round(m.Net(received), unitKind)
}

// Round redondea una cantidad según el tipo de unidad: entero para unidades
// enteras, 2 decimales para unidades continuas.
func Round(q decimal.Decimal, unitKind string) decimal.Decimal {
	if unitKind == entity.UnitKindWhole {
		return q.Round(0)
	}
	return q.Round(2)
}

// BalanceAroundEvent deriva el saldo inmediatamente antes o después de un
// traslado concreto, partiendo del saldo calculado a la fecha del evento
// (que ya lo incluye, por el corte inclusivo). Para "antes" se revierte solo
// el delta del evento: si fue saliente se suma de vuelta, si fue entrante se
// resta.
func BalanceAroundEvent(balanceAtDate, eventQty decimal.Decimal, direction string, isAfter bool, unitKind string) decimal.Decimal {
	if isAfter {
		return Round(balanceAtDate, unitKind)
	}
	switch direction {
	case entity.TransferDirectionOut:
		balanceAtDate = balanceAtDate.Add(eventQty)
	case entity.TransferDirectionIn:
		balanceAtDate = balanceAtDate.Sub(eventQty)
	}
	return Round(balanceAtDate, unitKind)
}

// ValidateQuantity rechaza cantidades no positivas y, en unidades enteras,
// cantidades fraccionarias. Se invoca antes de cualquier escritura.
func ValidateQuantity(q decimal.Decimal, unitKind string) error {
	if !q.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	if unitKind == entity.UnitKindWhole && !q.IsInteger() {
		return domain.ErrInvalidQuantity
	}
	return nil
}
