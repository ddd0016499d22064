// Seed de desarrollo: crea el usuario admin y un par de lotes de
// muestra para probar la consola en local.
//
//	go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/infrastructure/postgres"
	"github.com/javrojas/Almacen-api/pkg/config"
	"github.com/javrojas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)

	adminEmail := "admin@almacen.local"
	existing, err := userRepo.FindByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	adminID := ""
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear contraseña")
		}
		now := time.Now().UTC()
		admin := &entity.User{
			ID:           uuid.NewString(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		adminID = admin.ID
		log.Info().Str("email", adminEmail).Msg("admin creado (contraseña: admin12345, cámbiala)")
	} else {
		adminID = existing.ID
		log.Info().Msg("admin ya existe, omitiendo")
	}

	now := time.Now().UTC()
	lots := []*entity.Lot{
		{
			ID: uuid.NewString(), Type: entity.LotTypeRawMaterial,
			Code: "MP-AZUCAR-001", Name: "Azúcar refinada", Unit: "kg",
			UnitKind:         entity.UnitKindDecimal,
			QuantityReceived: decimal.NewFromInt(100), QuantityAvailable: decimal.NewFromInt(100),
			ReceivedAt: now, CreatedAt: now, UpdatedAt: now, CreatedBy: adminID,
		},
		{
			ID: uuid.NewString(), Type: entity.LotTypeRecurringProduct,
			Code: "PR-CAJA-001", Name: "Cajas plegadas", Unit: "piezas",
			UnitKind:         entity.UnitKindWhole,
			QuantityReceived: decimal.NewFromInt(500), QuantityAvailable: decimal.NewFromInt(500),
			ReceivedAt: now, CreatedAt: now, UpdatedAt: now, CreatedBy: adminID,
		},
	}
	for _, lot := range lots {
		if err := lotRepo.Create(ctx, lot); err != nil {
			log.Warn().Err(err).Str("code", lot.Code).Msg("lote no creado (puede existir)")
			continue
		}
		log.Info().Str("code", lot.Code).Msg("lote de muestra creado")
	}

	log.Info().Msg("seed completado")
}
