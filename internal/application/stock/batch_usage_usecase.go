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

// BatchUsageUseCase registra consumos de lotes por batches de
// producción. Aplica la misma guarda de saldo que mermas y traslados.
type BatchUsageUseCase struct {
	lots     repository.LotRepository
	batches  repository.BatchRepository
	balances BalanceComputer
	tx       TxRunner
}

func NewBatchUsageUseCase(lots repository.LotRepository, batches repository.BatchRepository, balances BalanceComputer, tx TxRunner) *BatchUsageUseCase {
	return &BatchUsageUseCase{lots: lots, batches: batches, balances: balances, tx: tx}
}

// Register valida y persiste un consumo de batch.
func (uc *BatchUsageUseCase) Register(ctx context.Context, req dto.RegisterBatchUsageRequest, userID string) (*entity.BatchUsageRecord, error) {
	if !entity.ValidLotType(req.LotType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, req.LotType)
	}

	lot, err := uc.lots.GetByID(ctx, req.LotType, req.LotID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote: %v", domain.ErrDataAccess, err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, req.LotType, req.LotID)
	}

	batch, err := uc.batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar batch: %v", domain.ErrDataAccess, err)
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: batch %s", domain.ErrNotFound, req.BatchID)
	}
	if batch.Status == entity.BatchStatusClosed {
		return nil, fmt.Errorf("%w: el batch %s está cerrado", domain.ErrInvalidInput, batch.Code)
	}

	if err := ledgerdom.ValidateQuantity(req.Quantity, lot.UnitKind); err != nil {
		return nil, err
	}

	current, err := checkBalance(ctx, uc.balances, req.LotType, req.LotID, req.Date, req.Quantity)
	if err != nil {
		return nil, err
	}

	rec := &entity.BatchUsageRecord{
		ID:        uuid.NewString(),
		LotID:     req.LotID,
		BatchID:   req.BatchID,
		Date:      req.Date,
		Quantity:  req.Quantity,
		CreatedAt: time.Now().UTC(),
		CreatedBy: userID,
	}

	err = uc.tx.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.WasteRepository,
		_ repository.TransferRepository,
		usageRepo repository.BatchUsageRepository,
	) error {
		if err := usageRepo.Create(ctx, rec); err != nil {
			return fmt.Errorf("%w: registrar consumo: %v", domain.ErrDataAccess, err)
		}
		cache := ledgerdom.Round(current.Sub(req.Quantity), lot.UnitKind)
		if err := lotRepo.UpdateCachedAvailable(ctx, req.LotType, req.LotID, cache); err != nil {
			return fmt.Errorf("%w: refrescar disponibilidad: %v", domain.ErrDataAccess, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
