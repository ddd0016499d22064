package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javrojas/Almacen-api/internal/application/auth"
	"github.com/javrojas/Almacen-api/internal/application/billing"
	"github.com/javrojas/Almacen-api/internal/application/ledger"
	"github.com/javrojas/Almacen-api/internal/application/stock"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	LotUC        *stock.LotUseCase
	BalanceUC    *ledger.BalanceUseCase
	WasteUC      *stock.WasteUseCase
	TransferUC   *stock.TransferUseCase
	BatchUC      *stock.BatchUseCase
	BatchUsageUC *stock.BatchUsageUseCase
	BillingUC    *billing.UseCase
	TransferRepo repository.TransferRepository
	PDFGen       ledger.StatementPDFGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	opsOnly := RequireRole(entity.RoleAdmin, entity.RoleOperario)
	salesOnly := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Lotes y kardex (lectura para todos, escritura operaciones)
	lots := protected.Group("/lots/:lotType")
	lotHandler := NewLotHandler(deps.LotUC, deps.BalanceUC, deps.PDFGen)
	lots.Post("/", opsOnly, lotHandler.Create)
	lots.Get("/", lotHandler.List)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Get("/:id/balance", lotHandler.Balance)
	lots.Get("/:id/balance-around", lotHandler.BalanceAround)
	lots.Get("/:id/ledger", lotHandler.Ledger)
	lots.Get("/:id/ledger.pdf", lotHandler.LedgerPDF)

	// Mermas (escritura operaciones)
	waste := protected.Group("/waste")
	wasteHandler := NewWasteHandler(deps.WasteUC)
	waste.Post("/", opsOnly, wasteHandler.Register)
	waste.Get("/", wasteHandler.List)
	waste.Post("/:id/evidence", opsOnly, wasteHandler.AttachEvidence)
	waste.Get("/:id/evidence", wasteHandler.ListEvidence)

	// Traslados (escritura operaciones)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.TransferRepo)
	transfers.Post("/", opsOnly, transferHandler.Register)
	transfers.Get("/", transferHandler.List)

	// Batches y consumos (escritura operaciones)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.BatchUsageUC)
	batches.Post("/", opsOnly, batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Post("/:id/usage", opsOnly, batchHandler.RegisterUsage)

	// Facturación (escritura ventas)
	billingHandler := NewBillingHandler(deps.BillingUC)
	orders := protected.Group("/orders")
	orders.Post("/", salesOnly, billingHandler.CreateOrder)
	orders.Get("/", billingHandler.ListOrders)
	orders.Get("/:id", billingHandler.GetOrder)

	payments := protected.Group("/payments")
	payments.Post("/", salesOnly, billingHandler.RegisterPayment)
	payments.Get("/", billingHandler.ListPayments)

	invoices := protected.Group("/invoices")
	invoices.Post("/", salesOnly, billingHandler.CreateInvoice)
	invoices.Get("/", billingHandler.ListInvoices)
	invoices.Get("/:id", billingHandler.GetInvoice)
}
