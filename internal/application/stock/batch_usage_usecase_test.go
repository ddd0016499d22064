package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/application/stock"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

const testBatchID = "33333333-3333-3333-3333-333333333333"

func buildUsageUC(batchStatus, atDate, current string) (*stock.BatchUsageUseCase, *fakeUsageRepo, *fakeLotRepo) {
	lots := newFakeLotRepo(wholeLot())
	usages := &fakeUsageRepo{}
	batches := &fakeBatchRepo{batches: map[string]*entity.Batch{
		testBatchID: {ID: testBatchID, Code: "B-001", Status: batchStatus},
	}}
	tx := &fakeTxRunner{lots: lots, wastes: &fakeWasteRepo{}, transfers: &fakeTransferRepo{}, usages: usages}
	balances := &fakeBalances{
		atDate:  map[string]decimal.Decimal{entity.LotTypeRawMaterial + "/" + testLotID: dec(atDate)},
		current: map[string]decimal.Decimal{entity.LotTypeRawMaterial + "/" + testLotID: dec(current)},
	}
	return stock.NewBatchUsageUseCase(lots, batches, balances, tx), usages, lots
}

func usageReq(qty string) dto.RegisterBatchUsageRequest {
	return dto.RegisterBatchUsageRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		BatchID: testBatchID, Date: time.Now().UTC(), Quantity: dec(qty),
	}
}

func TestBatchUsageRegister_OK(t *testing.T) {
	uc, usages, lots := buildUsageUC(entity.BatchStatusOpen, "45", "45")

	rec, err := uc.Register(context.Background(), usageReq("30"), "user-1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Len(t, usages.created, 1)
	cache := lots.updates[entity.LotTypeRawMaterial+"/"+testLotID]
	assert.True(t, cache.Equal(dec("15")), "snapshot esperado 15, obtenido %s", cache)
}

func TestBatchUsageRegister_SuperaSaldo_Rechazado(t *testing.T) {
	// Saldo actual de sobra: lo que rechaza es el saldo a la fecha.
	uc, usages, _ := buildUsageUC(entity.BatchStatusOpen, "45", "100")

	_, err := uc.Register(context.Background(), usageReq("50"), "user-1")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, usages.created)
}

func TestBatchUsageRegister_RetroFechadoSuperaSaldoActual_Rechazado(t *testing.T) {
	// A la fecha del consumo había 60, pero el saldo vigente es 45.
	uc, usages, lots := buildUsageUC(entity.BatchStatusOpen, "60", "45")

	req := usageReq("50")
	req.Date = time.Now().UTC().Add(-48 * time.Hour)
	_, err := uc.Register(context.Background(), req, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("45")),
		"debe reportarse el menor de los dos saldos")

	assert.Empty(t, usages.created)
	assert.Empty(t, lots.updates)
}

func TestBatchUsageRegister_BatchCerrado_Rechazado(t *testing.T) {
	uc, usages, _ := buildUsageUC(entity.BatchStatusClosed, "45", "45")

	_, err := uc.Register(context.Background(), usageReq("5"), "user-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, usages.created)
}

func TestBatchUsageRegister_BatchInexistente_NotFound(t *testing.T) {
	uc, _, _ := buildUsageUC(entity.BatchStatusOpen, "45", "45")

	req := usageReq("5")
	req.BatchID = "no-existe"
	_, err := uc.Register(context.Background(), req, "user-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
