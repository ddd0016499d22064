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

const destLotID = "22222222-2222-2222-2222-222222222222"

func destLot() *entity.Lot {
	return &entity.Lot{
		ID: destLotID, Type: entity.LotTypeRecurringProduct,
		Code: "PR-001", Name: "Cajas", Unit: "piezas",
		UnitKind:         entity.UnitKindWhole,
		QuantityReceived: dec("500"),
	}
}

func buildTransferUC(fromAtDate, fromCurrent, toCurrent string) (*stock.TransferUseCase, *fakeTransferRepo, *fakeLotRepo) {
	lots := newFakeLotRepo(wholeLot(), destLot())
	transfers := &fakeTransferRepo{}
	tx := &fakeTxRunner{lots: lots, wastes: &fakeWasteRepo{}, transfers: transfers, usages: &fakeUsageRepo{}}
	balances := &fakeBalances{
		atDate: map[string]decimal.Decimal{
			entity.LotTypeRawMaterial + "/" + testLotID: dec(fromAtDate),
		},
		current: map[string]decimal.Decimal{
			entity.LotTypeRawMaterial + "/" + testLotID:      dec(fromCurrent),
			entity.LotTypeRecurringProduct + "/" + destLotID: dec(toCurrent),
		},
	}
	uc := stock.NewTransferUseCase(lots, balances, tx)
	return uc, transfers, lots
}

func transferReq(qty string) dto.RegisterTransferRequest {
	return dto.RegisterTransferRequest{
		FromLotType: entity.LotTypeRawMaterial, FromLotID: testLotID,
		ToLotType: entity.LotTypeRecurringProduct, ToLotID: destLotID,
		Date: time.Now().UTC(), Quantity: dec(qty), Reason: "reempaque",
	}
}

func TestTransferRegister_EscribeLasDosCaras(t *testing.T) {
	uc, transfers, lots := buildTransferUC("45", "45", "500")

	out, err := uc.Register(context.Background(), transferReq("15"), "user-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	require.Len(t, transfers.created, 2, "un traslado lógico son dos filas")
	outRec, inRec := transfers.created[0], transfers.created[1]

	assert.Equal(t, entity.TransferDirectionOut, outRec.Direction)
	assert.Equal(t, entity.TransferDirectionIn, inRec.Direction)
	assert.Equal(t, outRec.TransferID, inRec.TransferID,
		"las dos caras comparten el identificador del traslado")
	assert.NotEqual(t, outRec.ID, inRec.ID)
	assert.True(t, outRec.Quantity.Equal(inRec.Quantity))

	// La cara entrante referencia al lote origen y viceversa.
	assert.Equal(t, testLotID, inRec.CounterpartLotID)
	assert.Equal(t, destLotID, outRec.CounterpartLotID)

	// Snapshots: origen 45-15=30, destino 500+15=515.
	fromCache := lots.updates[entity.LotTypeRawMaterial+"/"+testLotID]
	toCache := lots.updates[entity.LotTypeRecurringProduct+"/"+destLotID]
	assert.True(t, fromCache.Equal(dec("30")), "origen esperado 30, obtenido %s", fromCache)
	assert.True(t, toCache.Equal(dec("515")), "destino esperado 515, obtenido %s", toCache)
}

func TestTransferRegister_SuperaSaldoOrigen_Rechazado(t *testing.T) {
	// Saldo actual de sobra: lo que rechaza es el saldo a la fecha.
	uc, transfers, lots := buildTransferUC("45", "100", "500")

	_, err := uc.Register(context.Background(), transferReq("50"), "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("45")))
	assert.True(t, insufficient.Requested.Equal(dec("50")))

	assert.Empty(t, transfers.created, "nada debe escribirse si el origen no alcanza")
	assert.Empty(t, lots.updates)
}

func TestTransferRegister_RetroFechadoSuperaSaldoActual_Rechazado(t *testing.T) {
	// A la fecha del traslado el origen tenía 60, pero hoy tiene 45.
	uc, transfers, lots := buildTransferUC("60", "45", "500")

	req := transferReq("50")
	req.Date = time.Now().UTC().Add(-48 * time.Hour)
	_, err := uc.Register(context.Background(), req, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("45")),
		"debe reportarse el menor de los dos saldos")
	assert.True(t, insufficient.Requested.Equal(dec("50")))

	assert.Empty(t, transfers.created)
	assert.Empty(t, lots.updates)
}

func TestTransferRegister_MismoLote_Rechazado(t *testing.T) {
	uc, _, _ := buildTransferUC("45", "45", "500")

	req := transferReq("5")
	req.ToLotType = req.FromLotType
	req.ToLotID = req.FromLotID
	_, err := uc.Register(context.Background(), req, "user-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferRegister_DestinoInexistente_NotFound(t *testing.T) {
	uc, _, _ := buildTransferUC("45", "45", "500")

	req := transferReq("5")
	req.ToLotID = "no-existe"
	_, err := uc.Register(context.Background(), req, "user-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
