package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/notification"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// NotificationHandler maneja las peticiones HTTP de notificaciones.
type NotificationHandler struct {
	uc  *notification.UseCase
	log *logger.Logger
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

// List lista las notificaciones del usuario autenticado con filtros
// conjuntivos (category, is_read) y paginación.
// GET /api/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var req dto.NotificationListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetUser(c).ID, req)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// MarkRead marca una notificación propia como leída. Idempotente.
// POST /api/notifications/mark-read/:id
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.MarkRead(c.Context(), int64(id), GetUser(c).ID)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// MarkAllRead marca como leídas todas las no leídas del usuario, opcionalmente
// restringido a una categoría.
// POST /api/notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	category := c.Query("category")
	count, err := h.uc.MarkAllRead(c.Context(), GetUser(c).ID, category)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(dto.MarkAllReadResponse{Success: true, MarkedCount: count})
}

// Delete elimina una notificación propia. Una ajena o inexistente es 404,
// sin distinguir los dos casos.
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	ok, err := h.uc.Delete(c.Context(), int64(id), GetUser(c).ID)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Create crea una notificación dirigida a un usuario concreto (solo admin).
// POST /api/notifications/create
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateForRole crea una notificación por cada usuario activo del rol (solo
// admin). Cohorte vacía responde created_count 0, no error.
// POST /api/notifications/create-for-role
func (h *NotificationHandler) CreateForRole(c *fiber.Ctx) error {
	var in dto.CreateForRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.CreateForRole(c.Context(), in)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedForRoleResponse{Success: true, CreatedCount: len(created)})
}
