package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Balance: fórmula del neto
// ──────────────────────────────────────────────────────────────────────────────

func TestBalance_FormulaCompleta(t *testing.T) {
	// recibido 100, consumo 30, merma 10, salida 15, entrada 5 → 50
	m := ledger.Movements{
		Consumed:       dec("30"),
		Wasted:         dec("10"),
		TransferredOut: dec("15"),
		TransferredIn:  dec("5"),
	}
	got := ledger.Balance(dec("100"), m, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("50")), "esperado 50, obtenido %s", got)
}

func TestBalance_SinMovimientos_DevuelveRecibido(t *testing.T) {
	got := ledger.Balance(dec("100"), ledger.Movements{}, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("100")))
}

func TestBalance_NegativoSeDevuelveTalCual(t *testing.T) {
	// Datos inconsistentes: más consumo que recibido. No se recorta a cero.
	m := ledger.Movements{Consumed: dec("130")}
	got := ledger.Balance(dec("100"), m, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("-30")), "el saldo negativo debe aflorar, obtenido %s", got)
	assert.True(t, got.IsNegative())
}

// ──────────────────────────────────────────────────────────────────────────────
// Redondeo por tipo de unidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRound_UnidadEntera(t *testing.T) {
	assert.True(t, ledger.Round(dec("49.6"), entity.UnitKindWhole).Equal(dec("50")))
	assert.True(t, ledger.Round(dec("49.4"), entity.UnitKindWhole).Equal(dec("49")))
}

func TestRound_UnidadContinua_DosDecimales(t *testing.T) {
	assert.True(t, ledger.Round(dec("49.567"), entity.UnitKindDecimal).Equal(dec("49.57")))
	assert.True(t, ledger.Round(dec("0.005"), entity.UnitKindDecimal).Equal(dec("0.01")))
}

func TestBalance_UnidadContinua_RedondeaADosDecimales(t *testing.T) {
	m := ledger.Movements{Wasted: dec("0.333")}
	got := ledger.Balance(dec("10"), m, entity.UnitKindDecimal)
	assert.True(t, got.Equal(dec("9.67")), "esperado 9.67, obtenido %s", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// BalanceAroundEvent: antes/después de un traslado
// ──────────────────────────────────────────────────────────────────────────────

func TestBalanceAroundEvent_DespuesEsElSaldoALaFecha(t *testing.T) {
	got := ledger.BalanceAroundEvent(dec("45"), dec("15"), entity.TransferDirectionOut, true, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("45")))
}

func TestBalanceAroundEvent_AntesDeSalida_SumaDeVuelta(t *testing.T) {
	// saldo a la fecha 45 con salida de 15 incluida → antes era 60
	got := ledger.BalanceAroundEvent(dec("45"), dec("15"), entity.TransferDirectionOut, false, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("60")), "esperado 60, obtenido %s", got)
}

func TestBalanceAroundEvent_AntesDeEntrada_Resta(t *testing.T) {
	// saldo a la fecha 105 con entrada de 5 incluida → antes era 100
	got := ledger.BalanceAroundEvent(dec("105"), dec("5"), entity.TransferDirectionIn, false, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("100")), "esperado 100, obtenido %s", got)
}

func TestBalanceAroundEvent_SoloRevierteSuPropioDelta(t *testing.T) {
	// Dos traslados el mismo día: el saldo a la fecha incluye ambos; "antes"
	// del segundo solo revierte el delta del segundo.
	balanceAtDate := dec("70") // 100 - 20 (primero) - 10 (segundo)
	got := ledger.BalanceAroundEvent(balanceAtDate, dec("10"), entity.TransferDirectionOut, false, entity.UnitKindWhole)
	assert.True(t, got.Equal(dec("80")), "esperado 80, obtenido %s", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateQuantity_PositivaEntera_OK(t *testing.T) {
	require.NoError(t, ledger.ValidateQuantity(dec("3"), entity.UnitKindWhole))
	require.NoError(t, ledger.ValidateQuantity(dec("2.5"), entity.UnitKindDecimal))
}

func TestValidateQuantity_FraccionEnUnidadEntera_Rechazada(t *testing.T) {
	err := ledger.ValidateQuantity(dec("2.5"), entity.UnitKindWhole)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity,
		"2.5 en unidad entera debe rechazarse")
}

func TestValidateQuantity_CeroYNegativa_Rechazadas(t *testing.T) {
	assert.ErrorIs(t, ledger.ValidateQuantity(decimal.Zero, entity.UnitKindDecimal), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.ValidateQuantity(dec("-1"), entity.UnitKindDecimal), domain.ErrInvalidQuantity)
}
