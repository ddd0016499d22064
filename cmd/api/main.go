package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcsclient "cloud.google.com/go/storage"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/javrojas/Almacen-api/internal/application/auth"
	"github.com/javrojas/Almacen-api/internal/application/billing"
	"github.com/javrojas/Almacen-api/internal/application/ledger"
	"github.com/javrojas/Almacen-api/internal/application/stock"
	infragcs "github.com/javrojas/Almacen-api/internal/infrastructure/gcs"
	infrapdf "github.com/javrojas/Almacen-api/internal/infrastructure/pdf"
	"github.com/javrojas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/javrojas/Almacen-api/internal/interfaces/http"
	"github.com/javrojas/Almacen-api/pkg/config"
	"github.com/javrojas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	wasteRepo := postgres.NewWasteRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	usageRepo := postgres.NewBatchUsageRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Evidencia de mermas en GCS. Sin bucket configurado la subida queda
	// deshabilitada y el resto de la API funciona igual.
	var evidenceStorage stock.EvidenceStorage
	if cfg.GCS.Bucket != "" {
		client, err := gcsclient.NewClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente GCS")
		}
		defer client.Close()
		evidenceStorage, err = infragcs.NewEvidenceStorage(
			client, cfg.GCS.Bucket, time.Duration(cfg.GCS.SignedURLExpiry)*time.Minute)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén de evidencia")
		}
	} else {
		log.Warn().Msg("GCS_EVIDENCE_BUCKET vacío: evidencia de mermas deshabilitada")
	}

	balanceUC := ledger.NewBalanceUseCase(lotRepo, usageRepo, wasteRepo, transferRepo)
	lotUC := stock.NewLotUseCase(lotRepo)
	wasteUC := stock.NewWasteUseCase(lotRepo, wasteRepo, balanceUC, txRunner, evidenceStorage)
	transferUC := stock.NewTransferUseCase(lotRepo, balanceUC, txRunner)
	batchUC := stock.NewBatchUseCase(batchRepo)
	batchUsageUC := stock.NewBatchUsageUseCase(lotRepo, batchRepo, balanceUC, txRunner)
	billingUC := billing.NewUseCase(orderRepo, paymentRepo, invoiceRepo, txRunner)
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	pdfGen := infrapdf.NewKardexGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacen Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		LotUC:        lotUC,
		BalanceUC:    balanceUC,
		WasteUC:      wasteUC,
		TransferUC:   transferUC,
		BatchUC:      batchUC,
		BatchUsageUC: batchUsageUC,
		BillingUC:    billingUC,
		TransferRepo: transferRepo,
		PDFGen:       pdfGen,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
