package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/application/stock"
)

// WasteHandler maneja mermas y su evidencia.
type WasteHandler struct {
	uc *stock.WasteUseCase
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *stock.WasteUseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// Register registra una merma. Falla con 409 si la cantidad supera el
// saldo conciliado a la fecha del evento.
func (h *WasteHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Register(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// List mermas paginadas.
func (h *WasteHandler) List(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	recs, err := h.uc.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(recs), "waste": recs})
}

// AttachEvidence sube un archivo de evidencia (multipart, campo "file").
func (h *WasteHandler) AttachEvidence(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo file requerido (multipart)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	path, err := h.uc.AttachEvidence(c.Context(), c.Params("id"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"evidence_path": path})
}

// ListEvidence devuelve URLs firmadas de la evidencia de la merma.
func (h *WasteHandler) ListEvidence(c *fiber.Ctx) error {
	urls, err := h.uc.ListEvidence(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(urls), "urls": urls})
}
