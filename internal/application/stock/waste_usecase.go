// Package stock contiene los casos de uso de escritura del kardex:
// mermas, traslados y consumos de batch. Toda escritura valida primero
// el saldo conciliado a la fecha del evento.
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

// WasteUseCase registra mermas y gestiona su evidencia.
type WasteUseCase struct {
	lots     repository.LotRepository
	wastes   repository.WasteRepository
	balances BalanceComputer
	tx       TxRunner
	storage  EvidenceStorage
}

func NewWasteUseCase(lots repository.LotRepository, wastes repository.WasteRepository, balances BalanceComputer, tx TxRunner, storage EvidenceStorage) *WasteUseCase {
	return &WasteUseCase{lots: lots, wastes: wastes, balances: balances, tx: tx, storage: storage}
}

// Register valida y persiste una merma. La cantidad debe ser positiva,
// entera si la unidad del lote es entera, y no puede superar ni el
// saldo conciliado a la fecha del evento ni el saldo actual. Nada se
// escribe si alguna validación falla.
func (uc *WasteUseCase) Register(ctx context.Context, req dto.RegisterWasteRequest, userID string) (*entity.WasteRecord, error) {
	if !entity.ValidLotType(req.LotType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, req.LotType)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: la merma requiere un motivo", domain.ErrInvalidInput)
	}

	lot, err := uc.lots.GetByID(ctx, req.LotType, req.LotID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote: %v", domain.ErrDataAccess, err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, req.LotType, req.LotID)
	}
	if err := ledgerdom.ValidateQuantity(req.Quantity, lot.UnitKind); err != nil {
		return nil, err
	}

	current, err := checkBalance(ctx, uc.balances, req.LotType, req.LotID, req.Date, req.Quantity)
	if err != nil {
		return nil, err
	}

	rec := &entity.WasteRecord{
		ID:        uuid.NewString(),
		LotType:   req.LotType,
		LotID:     req.LotID,
		Date:      req.Date,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
		CreatedBy: userID,
	}

	err = uc.tx.Run(ctx, func(
		lotRepo repository.LotRepository,
		wasteRepo repository.WasteRepository,
		_ repository.TransferRepository,
		_ repository.BatchUsageRepository,
	) error {
		if err := wasteRepo.Create(ctx, rec); err != nil {
			return fmt.Errorf("%w: registrar merma: %v", domain.ErrDataAccess, err)
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

// AttachEvidence sube el archivo al bucket y lo asocia a la merma.
// La ruta del objeto es <wasteID>/<fileName>; una merma puede acumular
// varios archivos y evidence_path apunta al último.
func (uc *WasteUseCase) AttachEvidence(ctx context.Context, wasteID, fileName, contentType string, data []byte) (string, error) {
	if uc.storage == nil {
		return "", fmt.Errorf("%w: almacenamiento de evidencia no configurado", domain.ErrInvalidInput)
	}
	rec, err := uc.wastes.GetByID(ctx, wasteID)
	if err != nil {
		return "", fmt.Errorf("%w: consultar merma: %v", domain.ErrDataAccess, err)
	}
	if rec == nil {
		return "", fmt.Errorf("%w: merma %s", domain.ErrNotFound, wasteID)
	}
	if len(data) == 0 || fileName == "" {
		return "", fmt.Errorf("%w: archivo de evidencia vacío", domain.ErrInvalidInput)
	}

	objectPath := fmt.Sprintf("%s/%s", wasteID, fileName)
	if err := uc.storage.Upload(ctx, objectPath, contentType, data); err != nil {
		return "", fmt.Errorf("subir evidencia: %w", err)
	}
	if err := uc.wastes.SetEvidencePath(ctx, wasteID, objectPath); err != nil {
		return "", fmt.Errorf("%w: asociar evidencia: %v", domain.ErrDataAccess, err)
	}
	return objectPath, nil
}

// ListEvidence devuelve URLs firmadas de lectura para todos los
// archivos de evidencia de la merma.
func (uc *WasteUseCase) ListEvidence(ctx context.Context, wasteID string) ([]string, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento de evidencia no configurado", domain.ErrInvalidInput)
	}
	rec, err := uc.wastes.GetByID(ctx, wasteID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar merma: %v", domain.ErrDataAccess, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: merma %s", domain.ErrNotFound, wasteID)
	}

	paths, err := uc.storage.List(ctx, wasteID+"/")
	if err != nil {
		return nil, fmt.Errorf("listar evidencia: %w", err)
	}
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		u, err := uc.storage.SignedURL(p)
		if err != nil {
			return nil, fmt.Errorf("firmar URL de evidencia: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// List devuelve mermas paginadas.
func (uc *WasteUseCase) List(ctx context.Context, limit, offset int) ([]*entity.WasteRecord, error) {
	recs, err := uc.wastes.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar mermas: %v", domain.ErrDataAccess, err)
	}
	return recs, nil
}
