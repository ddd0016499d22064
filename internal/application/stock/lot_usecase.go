package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	ledgerdom "github.com/javrojas/Almacen-api/internal/domain/ledger"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
	"github.com/javrojas/Almacen-api/pkg/textnorm"
)

// LotUseCase alta y consulta de lotes.
type LotUseCase struct {
	lots repository.LotRepository
}

func NewLotUseCase(lots repository.LotRepository) *LotUseCase {
	return &LotUseCase{lots: lots}
}

// Create registra la recepción de un lote. La cantidad recibida queda
// inmutable y el snapshot de disponibilidad arranca igual a ella.
func (uc *LotUseCase) Create(ctx context.Context, lotType string, req dto.CreateLotRequest, userID string) (*entity.Lot, error) {
	if !entity.ValidLotType(lotType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, lotType)
	}
	if req.Code == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if req.UnitKind != entity.UnitKindWhole && req.UnitKind != entity.UnitKindDecimal {
		return nil, fmt.Errorf("%w: clase de unidad %q", domain.ErrInvalidInput, req.UnitKind)
	}
	if err := ledgerdom.ValidateQuantity(req.QuantityReceived, req.UnitKind); err != nil {
		return nil, err
	}

	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	now := time.Now().UTC()
	lot := &entity.Lot{
		ID:                uuid.NewString(),
		Type:              lotType,
		Code:              req.Code,
		Name:              req.Name,
		Unit:              req.Unit,
		UnitKind:          req.UnitKind,
		QuantityReceived:  ledgerdom.Round(req.QuantityReceived, req.UnitKind),
		QuantityAvailable: ledgerdom.Round(req.QuantityReceived, req.UnitKind),
		ReceivedAt:        receivedAt,
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         userID,
	}
	if err := uc.lots.Create(ctx, lot); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: código de lote %s", domain.ErrDuplicate, req.Code)
		}
		return nil, fmt.Errorf("%w: crear lote: %v", domain.ErrDataAccess, err)
	}
	return lot, nil
}

// Get devuelve un lote o ErrNotFound.
func (uc *LotUseCase) Get(ctx context.Context, lotType, id string) (*entity.Lot, error) {
	if !entity.ValidLotType(lotType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, lotType)
	}
	lot, err := uc.lots.GetByID(ctx, lotType, id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar lote: %v", domain.ErrDataAccess, err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s/%s", domain.ErrNotFound, lotType, id)
	}
	return lot, nil
}

// List devuelve lotes del tipo dado. El término de búsqueda se
// normaliza (minúsculas, sin acentos) antes de filtrar.
func (uc *LotUseCase) List(ctx context.Context, lotType, search string, limit, offset int) ([]*entity.Lot, error) {
	if !entity.ValidLotType(lotType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, lotType)
	}
	lots, err := uc.lots.List(ctx, lotType, textnorm.Normalize(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar lotes: %v", domain.ErrDataAccess, err)
	}
	return lots, nil
}
