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
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// BatchUseCase alta y consulta de batches de producción.
type BatchUseCase struct {
	batches repository.BatchRepository
}

func NewBatchUseCase(batches repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{batches: batches}
}

// Create abre un batch nuevo.
func (uc *BatchUseCase) Create(ctx context.Context, req dto.CreateBatchRequest, userID string) (*entity.Batch, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("%w: el batch requiere código", domain.ErrInvalidInput)
	}
	producedAt := req.ProducedAt
	if producedAt.IsZero() {
		producedAt = time.Now().UTC()
	}
	b := &entity.Batch{
		ID:         uuid.NewString(),
		Code:       req.Code,
		Status:     entity.BatchStatusOpen,
		Notes:      req.Notes,
		ProducedAt: producedAt,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  userID,
	}
	if err := uc.batches.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: código de batch %s", domain.ErrDuplicate, req.Code)
		}
		return nil, fmt.Errorf("%w: crear batch: %v", domain.ErrDataAccess, err)
	}
	return b, nil
}

// Get devuelve un batch o ErrNotFound.
func (uc *BatchUseCase) Get(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := uc.batches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar batch: %v", domain.ErrDataAccess, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: batch %s", domain.ErrNotFound, id)
	}
	return b, nil
}

// List devuelve batches paginados.
func (uc *BatchUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Batch, error) {
	bs, err := uc.batches.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar batches: %v", domain.ErrDataAccess, err)
	}
	return bs, nil
}
