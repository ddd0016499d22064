package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	ledgerdom "github.com/javrojas/Almacen-api/internal/domain/ledger"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// TransferUseCase registra traslados de cantidad entre lotes. Un
// traslado lógico persiste dos caras (salida y entrada) con el mismo
// TransferID, en una sola transacción.
type TransferUseCase struct {
	lots     repository.LotRepository
	balances BalanceComputer
	tx       TxRunner
}

func NewTransferUseCase(lots repository.LotRepository, balances BalanceComputer, tx TxRunner) *TransferUseCase {
	return &TransferUseCase{lots: lots, balances: balances, tx: tx}
}

// Register valida y persiste un traslado. La cantidad se valida contra
// el saldo del lote origen a la fecha del evento y contra su saldo
// actual; el lote destino solo debe existir. Devuelve la cara de salida.
func (uc *TransferUseCase) Register(ctx context.Context, req dto.RegisterTransferRequest, userID string) (*entity.TransferRecord, error) {
	if !entity.ValidLotType(req.FromLotType) || !entity.ValidLotType(req.ToLotType) {
		return nil, fmt.Errorf("%w: tipo de lote inválido", domain.ErrInvalidInput)
	}
	if req.FromLotType == req.ToLotType && req.FromLotID == req.ToLotID {
		return nil, fmt.Errorf("%w: origen y destino no pueden ser el mismo lote", domain.ErrInvalidInput)
	}

	from, err := uc.lots.GetByID(ctx, req.FromLotType, req.FromLotID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote origen: %v", domain.ErrDataAccess, err)
	}
	if from == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, req.FromLotType, req.FromLotID)
	}
	to, err := uc.lots.GetByID(ctx, req.ToLotType, req.ToLotID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote destino: %v", domain.ErrDataAccess, err)
	}
	if to == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, req.ToLotType, req.ToLotID)
	}

	if err := ledgerdom.ValidateQuantity(req.Quantity, from.UnitKind); err != nil {
		return nil, err
	}
	if err := ledgerdom.ValidateQuantity(req.Quantity, to.UnitKind); err != nil {
		return nil, err
	}

	fromCurrent, err := checkBalance(ctx, uc.balances, req.FromLotType, req.FromLotID, req.Date, req.Quantity)
	if err != nil {
		return nil, err
	}
	toCurrent, err := uc.balances.ComputeBalance(ctx, req.ToLotType, req.ToLotID, nil)
	if err != nil {
		return nil, err
	}

	transferID := uuid.NewString()
	now := time.Now().UTC()
	outRec := &entity.TransferRecord{
		ID:                  uuid.NewString(),
		TransferID:          transferID,
		LotType:             req.FromLotType,
		LotID:               req.FromLotID,
		CounterpartLotType:  req.ToLotType,
		CounterpartLotID:    req.ToLotID,
		Date:                req.Date,
		Quantity:            req.Quantity,
		Direction:           entity.TransferDirectionOut,
		Reason:              req.Reason,
		CreatedAt:           now,
		CreatedBy:           userID,
	}
	inRec := &entity.TransferRecord{
		ID:                  uuid.NewString(),
		TransferID:          transferID,
		LotType:             req.ToLotType,
		LotID:               req.ToLotID,
		CounterpartLotType:  req.FromLotType,
		CounterpartLotID:    req.FromLotID,
		Date:                req.Date,
		Quantity:            req.Quantity,
		Direction:           entity.TransferDirectionIn,
		Reason:              req.Reason,
		CreatedAt:           now,
		CreatedBy:           userID,
	}

	err = uc.tx.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.WasteRepository,
		transferRepo repository.TransferRepository,
		_ repository.BatchUsageRepository,
	) error {
		if err := transferRepo.Create(ctx, outRec); err != nil {
			return fmt.Errorf("%w: registrar salida: %v", domain.ErrDataAccess, err)
		}
		if err := transferRepo.Create(ctx, inRec); err != nil {
			return fmt.Errorf("%w: registrar entrada: %v", domain.ErrDataAccess, err)
		}
		fromCache := ledgerdom.Round(fromCurrent.Sub(req.Quantity), from.UnitKind)
		if err := lotRepo.UpdateCachedAvailable(ctx, req.FromLotType, req.FromLotID, fromCache); err != nil {
			return fmt.Errorf("%w: refrescar disponibilidad origen: %v", domain.ErrDataAccess, err)
		}
		toCache := ledgerdom.Round(toCurrent.Add(req.Quantity), to.UnitKind)
		if err := lotRepo.UpdateCachedAvailable(ctx, req.ToLotType, req.ToLotID, toCache); err != nil {
			return fmt.Errorf("%w: refrescar disponibilidad destino: %v", domain.ErrDataAccess, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outRec, nil
}
