package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc    *usecase.UserUseCase
	audit *usecase.AuditUseCase
	log   *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, audit *usecase.AuditUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, audit: audit, log: log}
}

// List lista los usuarios registrados.
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// Update cambia rol y/o actividad de un usuario. El cambio rige en la
// siguiente request del afectado.
// PATCH /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// Actions devuelve la bitácora de acciones de un usuario.
// GET /api/users/:id/actions
func (h *UserHandler) Actions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.audit.ListByUser(c.Context(), int64(id), page)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}
