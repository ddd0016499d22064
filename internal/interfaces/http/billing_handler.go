package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javrojas/Almacen-api/internal/application/billing"
	"github.com/javrojas/Almacen-api/internal/application/dto"
)

// BillingHandler maneja pedidos, pagos y facturas.
type BillingHandler struct {
	uc *billing.UseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.UseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// CreateOrder alta de un pedido.
func (h *BillingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.CreateOrder(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GetOrder devuelve un pedido.
func (h *BillingHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// ListOrders pedidos paginados.
func (h *BillingHandler) ListOrders(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	os, err := h.uc.ListOrders(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(os), "orders": os})
}

// RegisterPayment abona a un pedido.
func (h *BillingHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.RegisterPayment(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListPayments pagos paginados.
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	ps, err := h.uc.ListPayments(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(ps), "payments": ps})
}

// CreateInvoice emite una factura sobre un pedido.
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.CreateInvoice(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetInvoice devuelve una factura.
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	inv, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// ListInvoices facturas paginadas.
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	is, err := h.uc.ListInvoices(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(is), "invoices": is})
}
