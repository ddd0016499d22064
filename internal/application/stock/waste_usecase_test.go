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
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests de escritura del kardex
// ──────────────────────────────────────────────────────────────────────────────

type fakeLotRepo struct {
	lots    map[string]*entity.Lot // clave: type/id
	updates map[string]decimal.Decimal
}

func newFakeLotRepo(lots ...*entity.Lot) *fakeLotRepo {
	f := &fakeLotRepo{lots: map[string]*entity.Lot{}, updates: map[string]decimal.Decimal{}}
	for _, l := range lots {
		f.lots[l.Type+"/"+l.ID] = l
	}
	return f
}

func (f *fakeLotRepo) Create(_ context.Context, lot *entity.Lot) error {
	f.lots[lot.Type+"/"+lot.ID] = lot
	return nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, lotType, id string) (*entity.Lot, error) {
	return f.lots[lotType+"/"+id], nil
}

func (f *fakeLotRepo) List(_ context.Context, lotType, _ string, _, _ int) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range f.lots {
		if l.Type == lotType {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLotRepo) UpdateCachedAvailable(_ context.Context, lotType, id string, qty decimal.Decimal) error {
	f.updates[lotType+"/"+id] = qty
	return nil
}

type fakeWasteRepo struct {
	created []*entity.WasteRecord
}

func (f *fakeWasteRepo) Create(_ context.Context, rec *entity.WasteRecord) error {
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeWasteRepo) GetByID(_ context.Context, id string) (*entity.WasteRecord, error) {
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeWasteRepo) ListByLot(_ context.Context, _, _ string, _ *time.Time) ([]*entity.WasteRecord, error) {
	return f.created, nil
}

func (f *fakeWasteRepo) List(_ context.Context, _, _ int) ([]*entity.WasteRecord, error) {
	return f.created, nil
}

func (f *fakeWasteRepo) SetEvidencePath(_ context.Context, id, path string) error {
	for _, r := range f.created {
		if r.ID == id {
			r.EvidencePath = path
		}
	}
	return nil
}

type fakeTransferRepo struct {
	created []*entity.TransferRecord
}

func (f *fakeTransferRepo) Create(_ context.Context, rec *entity.TransferRecord) error {
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeTransferRepo) ListByLot(_ context.Context, _, _ string, _ *time.Time) ([]*entity.TransferRecord, error) {
	return f.created, nil
}

func (f *fakeTransferRepo) List(_ context.Context, _, _ int) ([]*entity.TransferRecord, error) {
	return f.created, nil
}

type fakeUsageRepo struct {
	created []*entity.BatchUsageRecord
}

func (f *fakeUsageRepo) Create(_ context.Context, rec *entity.BatchUsageRecord) error {
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeUsageRepo) ListByLot(_ context.Context, _ string, _ *time.Time) ([]*entity.BatchUsageRecord, error) {
	return f.created, nil
}

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func (f *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	f.batches[b.ID] = b
	return nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return f.batches[id], nil
}

func (f *fakeBatchRepo) List(_ context.Context, _, _ int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.batches {
		out = append(out, b)
	}
	return out, nil
}

// fakeBalances distingue el saldo al corte (asOf != nil) del saldo
// actual (asOf == nil), para poder ejercitar la guarda retro-fechada.
type fakeBalances struct {
	atDate  map[string]decimal.Decimal // clave: type/id
	current map[string]decimal.Decimal
}

func (f *fakeBalances) ComputeBalance(_ context.Context, lotType, lotID string, asOf *time.Time) (decimal.Decimal, error) {
	if asOf != nil {
		return f.atDate[lotType+"/"+lotID], nil
	}
	return f.current[lotType+"/"+lotID], nil
}

// fakeTxRunner ejecuta el callback con los fakes, sin transacción real.
type fakeTxRunner struct {
	lots      *fakeLotRepo
	wastes    *fakeWasteRepo
	transfers *fakeTransferRepo
	usages    *fakeUsageRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.LotRepository,
	repository.WasteRepository,
	repository.TransferRepository,
	repository.BatchUsageRepository,
) error) error {
	return fn(f.lots, f.wastes, f.transfers, f.usages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: lote de 100 piezas con saldo conciliado 45.
// ──────────────────────────────────────────────────────────────────────────────

const testLotID = "11111111-1111-1111-1111-111111111111"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func wholeLot() *entity.Lot {
	return &entity.Lot{
		ID: testLotID, Type: entity.LotTypeRawMaterial,
		Code: "MP-001", Name: "Harina", Unit: "piezas",
		UnitKind:         entity.UnitKindWhole,
		QuantityReceived: dec("100"),
	}
}

func buildWasteUC(lot *entity.Lot, atDate, current string) (*stock.WasteUseCase, *fakeWasteRepo, *fakeLotRepo) {
	lots := newFakeLotRepo(lot)
	wastes := &fakeWasteRepo{}
	tx := &fakeTxRunner{lots: lots, wastes: wastes, transfers: &fakeTransferRepo{}, usages: &fakeUsageRepo{}}
	balances := &fakeBalances{
		atDate:  map[string]decimal.Decimal{lot.Type + "/" + lot.ID: dec(atDate)},
		current: map[string]decimal.Decimal{lot.Type + "/" + lot.ID: dec(current)},
	}
	uc := stock.NewWasteUseCase(lots, wastes, balances, tx, nil)
	return uc, wastes, lots
}

func TestWasteRegister_OK(t *testing.T) {
	uc, wastes, lots := buildWasteUC(wholeLot(), "45", "45")

	rec, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		Date: time.Now().UTC(), Quantity: dec("10"), Reason: "rotura",
	}, "user-1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Len(t, wastes.created, 1, "debe escribirse exactamente un registro")
	assert.True(t, wastes.created[0].Quantity.Equal(dec("10")))

	// El snapshot baja de 45 a 35.
	cache, ok := lots.updates[entity.LotTypeRawMaterial+"/"+testLotID]
	require.True(t, ok, "debe refrescarse el snapshot de disponibilidad")
	assert.True(t, cache.Equal(dec("35")), "esperado 35, obtenido %s", cache)
}

func TestWasteRegister_SuperaSaldo_RechazadaSinEscribir(t *testing.T) {
	// Saldo actual de sobra: lo que rechaza es el saldo a la fecha.
	uc, wastes, lots := buildWasteUC(wholeLot(), "45", "100")

	_, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		Date: time.Now().UTC(), Quantity: dec("50"), Reason: "rotura",
	}, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("45")))
	assert.True(t, insufficient.Requested.Equal(dec("50")))
	assert.Contains(t, err.Error(), "45", "el mensaje debe incluir el disponible")
	assert.Contains(t, err.Error(), "50", "el mensaje debe incluir lo solicitado")

	assert.Empty(t, wastes.created, "nada debe escribirse si la validación falla")
	assert.Empty(t, lots.updates, "el snapshot no debe tocarse")
}

func TestWasteRegister_RetroFechadaSuperaSaldoActual_Rechazada(t *testing.T) {
	// A la fecha del evento había 60, pero el saldo vigente es 45:
	// aceptar 50 retro-fechado dejaría el saldo actual en negativo.
	uc, wastes, lots := buildWasteUC(wholeLot(), "60", "45")

	_, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		Date: time.Now().UTC().Add(-48 * time.Hour), Quantity: dec("50"), Reason: "rotura",
	}, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("45")),
		"debe reportarse el menor de los dos saldos")
	assert.True(t, insufficient.Requested.Equal(dec("50")))

	assert.Empty(t, wastes.created)
	assert.Empty(t, lots.updates)
}

func TestWasteRegister_FraccionEnUnidadEntera_Rechazada(t *testing.T) {
	uc, wastes, _ := buildWasteUC(wholeLot(), "45", "45")

	_, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		Date: time.Now().UTC(), Quantity: dec("2.5"), Reason: "rotura",
	}, "user-1")

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, wastes.created)
}

func TestWasteRegister_LoteInexistente_NotFound(t *testing.T) {
	uc, _, _ := buildWasteUC(wholeLot(), "45", "45")

	_, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: "otro-lote",
		Date: time.Now().UTC(), Quantity: dec("1"), Reason: "rotura",
	}, "user-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWasteRegister_SinMotivo_Rechazada(t *testing.T) {
	uc, _, _ := buildWasteUC(wholeLot(), "45", "45")

	_, err := uc.Register(context.Background(), dto.RegisterWasteRequest{
		LotType: entity.LotTypeRawMaterial, LotID: testLotID,
		Date: time.Now().UTC(), Quantity: dec("1"),
	}, "user-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
