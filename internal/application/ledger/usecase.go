// Package ledger implementa el motor de conciliación del kardex: el
// saldo de un lote se reconstruye desde sus eventos en vez de confiar
// en el snapshot cacheado.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	ledgerdom "github.com/javrojas/Almacen-api/internal/domain/ledger"
)

// BalanceUseCase calcula saldos conciliados contra el historial de
// eventos (consumos, mermas y traslados).
type BalanceUseCase struct {
	lots      lotReader
	usages    usageReader
	wastes    wasteReader
	transfers transferReader
}

func NewBalanceUseCase(lots lotReader, usages usageReader, wastes wasteReader, transfers transferReader) *BalanceUseCase {
	return &BalanceUseCase{lots: lots, usages: usages, wastes: wastes, transfers: transfers}
}

// ComputeBalance devuelve el saldo del lote considerando los eventos
// con fecha <= asOf. asOf nil incluye todo el historial. Los saldos
// negativos se devuelven tal cual: señalan datos inconsistentes y la
// UI debe poder mostrarlos.
func (uc *BalanceUseCase) ComputeBalance(ctx context.Context, lotType, lotID string, asOf *time.Time) (decimal.Decimal, error) {
	lot, mov, err := uc.collect(ctx, lotType, lotID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return ledgerdom.Balance(lot.QuantityReceived, mov, lot.UnitKind), nil
}

// ComputeBalanceAroundEvent devuelve el saldo inmediatamente antes o
// después de un evento concreto. "Después" es el saldo a la fecha del
// evento; "antes" revierte únicamente el delta de ese evento.
func (uc *BalanceUseCase) ComputeBalanceAroundEvent(ctx context.Context, lotType, lotID string, eventDate time.Time, eventQty decimal.Decimal, direction string, isAfter bool) (decimal.Decimal, error) {
	lot, mov, err := uc.collect(ctx, lotType, lotID, &eventDate)
	if err != nil {
		return decimal.Zero, err
	}
	atDate := mov.Net(lot.QuantityReceived)
	return ledgerdom.BalanceAroundEvent(atDate, eventQty, direction, isAfter, lot.UnitKind), nil
}

// collect trae el lote y acumula sus movimientos hasta el corte.
func (uc *BalanceUseCase) collect(ctx context.Context, lotType, lotID string, until *time.Time) (*entity.Lot, ledgerdom.Movements, error) {
	var mov ledgerdom.Movements

	lot, err := uc.lots.GetByID(ctx, lotType, lotID)
	if err != nil {
		return nil, mov, fmt.Errorf("%w: consultar lote: %v", domain.ErrDataAccess, err)
	}
	if lot == nil {
		return nil, mov, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, lotType, lotID)
	}

	usages, err := uc.usages.ListByLot(ctx, lotID, until)
	if err != nil {
		return nil, mov, fmt.Errorf("%w: listar consumos: %v", domain.ErrDataAccess, err)
	}
	consumed := decimal.Zero
	for _, u := range usages {
		consumed = consumed.Add(u.Quantity)
	}

	wastes, err := uc.wastes.ListByLot(ctx, lotType, lotID, until)
	if err != nil {
		return nil, mov, fmt.Errorf("%w: listar mermas: %v", domain.ErrDataAccess, err)
	}
	wasted := decimal.Zero
	for _, w := range wastes {
		wasted = wasted.Add(w.Quantity)
	}

	transfers, err := uc.transfers.ListByLot(ctx, lotType, lotID, until)
	if err != nil {
		return nil, mov, fmt.Errorf("%w: listar traslados: %v", domain.ErrDataAccess, err)
	}
	out, in := decimal.Zero, decimal.Zero
	for _, t := range transfers {
		switch t.Direction {
		case entity.TransferDirectionOut:
			out = out.Add(t.Quantity)
		case entity.TransferDirectionIn:
			in = in.Add(t.Quantity)
		}
	}

	mov = ledgerdom.Movements{
		Consumed:       consumed,
		Wasted:         wasted,
		TransferredOut: out,
		TransferredIn:  in,
	}
	return lot, mov, nil
}
