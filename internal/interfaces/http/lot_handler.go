package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/application/ledger"
	"github.com/javrojas/Almacen-api/internal/application/stock"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
)

// LotHandler maneja lotes y sus consultas de kardex.
type LotHandler struct {
	lotUC     *stock.LotUseCase
	balanceUC *ledger.BalanceUseCase
	pdfGen    ledger.StatementPDFGenerator
}

// NewLotHandler construye el handler.
func NewLotHandler(lotUC *stock.LotUseCase, balanceUC *ledger.BalanceUseCase, pdfGen ledger.StatementPDFGenerator) *LotHandler {
	return &LotHandler{lotUC: lotUC, balanceUC: balanceUC, pdfGen: pdfGen}
}

// parseDate acepta fecha con hora (RFC3339) o solo fecha. La fecha sin
// hora se interpreta como fin de día para que el corte incluya todos
// los eventos de esa fecha.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
	}
	return t.Add(24*time.Hour - time.Nanosecond), nil
}

// Create registra la recepción de un lote.
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.lotUC.Create(c.Context(), c.Params("lotType"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// List lotes del tipo, con búsqueda opcional.
func (h *LotHandler) List(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	lots, err := h.lotUC.List(c.Context(), c.Params("lotType"), c.Query("search"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(lots), "lots": lots})
}

// GetByID devuelve un lote.
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.lotUC.Get(c.Context(), c.Params("lotType"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// Balance saldo conciliado del lote, opcionalmente a una fecha de corte.
func (h *LotHandler) Balance(c *fiber.Ctx) error {
	lotType, id := c.Params("lotType"), c.Params("id")

	var asOf *time.Time
	if s := c.Query("as_of"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		asOf = &t
	}

	bal, err := h.balanceUC.ComputeBalance(c.Context(), lotType, id, asOf)
	if err != nil {
		return respondError(c, err)
	}
	lot, err := h.lotUC.Get(c.Context(), lotType, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		LotType: lotType, LotID: id, AsOf: asOf, Balance: bal, Unit: lot.Unit,
	})
}

// BalanceAround saldo inmediatamente antes o después de un evento.
// Query: date, quantity, direction (in|out), after (true|false).
func (h *LotHandler) BalanceAround(c *fiber.Ctx) error {
	lotType, id := c.Params("lotType"), c.Params("id")

	date, err := parseDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	qty, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida"})
	}
	var direction string
	switch c.Query("direction") {
	case "in":
		direction = entity.TransferDirectionIn
	case "out":
		direction = entity.TransferDirectionOut
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser in u out"})
	}
	isAfter := c.QueryBool("after", true)

	bal, err := h.balanceUC.ComputeBalanceAroundEvent(c.Context(), lotType, id, date, qty, direction, isAfter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"lot_type": lotType, "lot_id": id, "date": date,
		"after": isAfter, "balance": bal,
	})
}

// Ledger kardex cronológico del lote con saldo corrido.
func (h *LotHandler) Ledger(c *fiber.Ctx) error {
	st, err := h.statement(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// LedgerPDF kardex como PDF descargable.
func (h *LotHandler) LedgerPDF(c *fiber.Ctx) error {
	st, err := h.statement(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.pdfGen.GenerateStatement(st)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex-`+st.Lot.Code+`.pdf"`)
	return c.Send(pdf)
}

func (h *LotHandler) statement(c *fiber.Ctx) (*ledger.Statement, error) {
	var asOf *time.Time
	if s := c.Query("as_of"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		asOf = &t
	}
	return h.balanceUC.BuildStatement(c.Context(), c.Params("lotType"), c.Params("id"), asOf)
}
