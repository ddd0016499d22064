package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain"
)

// checkBalance valida que la cantidad no supere ni el saldo conciliado a
// la fecha del evento ni el saldo actual: un evento retro-fechado debe
// rechazarse si dejaría el saldo vigente en negativo, aunque a su fecha
// hubiera existencias de sobra. Reporta como disponible el menor de los
// dos saldos y devuelve el saldo actual para refrescar el snapshot.
func checkBalance(ctx context.Context, balances BalanceComputer, lotType, lotID string, date time.Time, qty decimal.Decimal) (decimal.Decimal, error) {
	atDate, err := balances.ComputeBalance(ctx, lotType, lotID, &date)
	if err != nil {
		return decimal.Zero, err
	}
	current, err := balances.ComputeBalance(ctx, lotType, lotID, nil)
	if err != nil {
		return decimal.Zero, err
	}

	available := atDate
	if current.LessThan(available) {
		available = current
	}
	if available.LessThan(qty) {
		return decimal.Zero, &domain.InsufficientStockError{Available: available, Requested: qty}
	}
	return current, nil
}
