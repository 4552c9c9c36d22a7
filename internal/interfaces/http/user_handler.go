package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// UserHandler administración de usuarios y de sus clientes asignados.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

func userFilter(c *fiber.Ctx) repository.UserFilter {
	return repository.UserFilter{Search: c.Query("q"), Role: c.Query("role")}
}

// List GET /api/users?q=&role=
func (h *UserHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetActor(c), userFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// Export GET /api/users/export
func (h *UserHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext(), GetActor(c), userFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, export.UsersFilename, data)
}

// Create POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/users/:id (Administrador o el propio usuario)
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetAssignments PUT /api/users/:id/clients
// Reemplaza el conjunto completo de clientes asignados.
func (h *UserHandler) SetAssignments(c *fiber.Ctx) error {
	var in dto.SetAssignmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetAssignments(c.UserContext(), GetActor(c), c.Params("id"), in.ClientIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddAssignment POST /api/users/:id/clients/:clientId
func (h *UserHandler) AddAssignment(c *fiber.Ctx) error {
	out, err := h.uc.AddAssignment(c.UserContext(), GetActor(c), c.Params("id"), c.Params("clientId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveAssignment DELETE /api/users/:id/clients/:clientId
func (h *UserHandler) RemoveAssignment(c *fiber.Ctx) error {
	out, err := h.uc.RemoveAssignment(c.UserContext(), GetActor(c), c.Params("id"), c.Params("clientId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
