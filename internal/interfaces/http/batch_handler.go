package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/application/stock"
)

// BatchHandler maneja batches de producción y sus consumos.
type BatchHandler struct {
	batchUC *stock.BatchUseCase
	usageUC *stock.BatchUsageUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(batchUC *stock.BatchUseCase, usageUC *stock.BatchUsageUseCase) *BatchHandler {
	return &BatchHandler{batchUC: batchUC, usageUC: usageUC}
}

// Create abre un batch.
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.batchUC.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// List batches paginados.
func (h *BatchHandler) List(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	bs, err := h.batchUC.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(bs), "batches": bs})
}

// GetByID devuelve un batch.
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.batchUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(b)
}

// RegisterUsage registra el consumo de un lote por el batch del path.
func (h *BatchHandler) RegisterUsage(c *fiber.Ctx) error {
	var in dto.RegisterBatchUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.BatchID = c.Params("id")
	rec, err := h.usageUC.Register(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}
