package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/application/stock"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// TransferHandler maneja traslados entre lotes.
type TransferHandler struct {
	uc        *stock.TransferUseCase
	transfers repository.TransferRepository
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *stock.TransferUseCase, transfers repository.TransferRepository) *TransferHandler {
	return &TransferHandler{uc: uc, transfers: transfers}
}

// Register registra un traslado. Escribe las dos caras (salida y
// entrada) en una sola transacción; 409 si el origen no alcanza.
func (h *TransferHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Register(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// List caras de traslado paginadas.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	recs, err := h.transfers.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(recs), "transfers": recs})
}
