package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	ledgerdom "github.com/javrojas/Almacen-api/internal/domain/ledger"
)

// Tipos de fila del kardex.
const (
	EntryReception   = "reception"
	EntryConsumption = "consumption"
	EntryWaste       = "waste"
	EntryTransferOut = "transfer_out"
	EntryTransferIn  = "transfer_in"
)

// StatementEntry una fila del kardex con saldo corrido.
type StatementEntry struct {
	Date      time.Time       `json:"date"`
	Kind      string          `json:"kind"`
	Reference string          `json:"reference,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Delta     decimal.Decimal `json:"delta"`
	Balance   decimal.Decimal `json:"balance"`
}

// Statement el kardex completo de un lote.
type Statement struct {
	Lot     *entity.Lot      `json:"lot"`
	AsOf    *time.Time       `json:"as_of,omitempty"`
	Entries []StatementEntry `json:"entries"`
	Balance decimal.Decimal  `json:"balance"`
}

// BuildStatement arma el kardex cronológico del lote hasta asOf
// (nil = todo el historial). El saldo corrido se redondea fila a fila
// según la clase de unidad del lote.
func (uc *BalanceUseCase) BuildStatement(ctx context.Context, lotType, lotID string, asOf *time.Time) (*Statement, error) {
	lot, err := uc.lots.GetByID(ctx, lotType, lotID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote: %v", domain.ErrDataAccess, err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, lotType, lotID)
	}

	entries := []StatementEntry{{
		Date:     lot.ReceivedAt,
		Kind:     EntryReception,
		Quantity: lot.QuantityReceived,
		Delta:    lot.QuantityReceived,
	}}

	usages, err := uc.usages.ListByLot(ctx, lotID, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: listar consumos: %v", domain.ErrDataAccess, err)
	}
	for _, u := range usages {
		entries = append(entries, StatementEntry{
			Date:      u.Date,
			Kind:      EntryConsumption,
			Reference: u.BatchID,
			Quantity:  u.Quantity,
			Delta:     u.Quantity.Neg(),
		})
	}

	wastes, err := uc.wastes.ListByLot(ctx, lotType, lotID, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: listar mermas: %v", domain.ErrDataAccess, err)
	}
	for _, w := range wastes {
		entries = append(entries, StatementEntry{
			Date:      w.Date,
			Kind:      EntryWaste,
			Reference: w.Reason,
			Quantity:  w.Quantity,
			Delta:     w.Quantity.Neg(),
		})
	}

	transfers, err := uc.transfers.ListByLot(ctx, lotType, lotID, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: listar traslados: %v", domain.ErrDataAccess, err)
	}
	for _, t := range transfers {
		e := StatementEntry{
			Date:      t.Date,
			Kind:      t.Direction,
			Reference: t.TransferID,
			Quantity:  t.Quantity,
		}
		if t.Direction == entity.TransferDirectionIn {
			e.Delta = t.Quantity
		} else {
			e.Delta = t.Quantity.Neg()
		}
		entries = append(entries, e)
	}

	// Orden cronológico estable; las recepciones abren el día.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	running := decimal.Zero
	for i := range entries {
		running = ledgerdom.Round(running.Add(entries[i].Delta), lot.UnitKind)
		entries[i].Balance = running
	}

	return &Statement{Lot: lot, AsOf: asOf, Entries: entries, Balance: running}, nil
}
