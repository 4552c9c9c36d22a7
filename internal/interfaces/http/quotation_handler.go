package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/usecase"
)

// QuotationHandler cotizaciones anidadas bajo /api/clients/:id/quotations.
type QuotationHandler struct {
	uc *usecase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// List GET /api/clients/:id/quotations?q=
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetActor(c), c.Params("id"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// Draft GET /api/clients/:id/quotations/new
// Devuelve una cotización sin guardar con RUC, cliente y facturar_a tomados del cliente.
func (h *QuotationHandler) Draft(c *fiber.Ctx) error {
	out, err := h.uc.Draft(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export GET /api/clients/:id/quotations/export?ids=a,b
func (h *QuotationHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext(), GetActor(c), c.Params("id"), splitIDs(c.Query("ids")))
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, export.QuotationsFilename, data)
}

// Stats GET /api/clients/:id/quotations/stats
func (h *QuotationHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/clients/:id/quotations
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/clients/:id/quotations/:qid
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"), c.Params("qid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/clients/:id/quotations/:qid/pdf
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	data, err := h.uc.PDF(c.UserContext(), GetActor(c), c.Params("id"), c.Params("qid"))
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("cotizacion-" + c.Params("qid") + ".pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

// Update PUT /api/clients/:id/quotations/:qid
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), c.Params("qid"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/clients/:id/quotations/:qid
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id"), c.Params("qid")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// splitIDs "a, b,,c" -> [a b c]; vacío -> nil (sin selección).
func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
