package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// ProcessHandler dispara procesos de negocio en 1C (manager o admin).
type ProcessHandler struct {
	uc  *usecase.ProcessUseCase
	log *logger.Logger
}

// NewProcessHandler construye el handler.
func NewProcessHandler(uc *usecase.ProcessUseCase, log *logger.Logger) *ProcessHandler {
	return &ProcessHandler{uc: uc, log: log}
}

// Run ejecuta un proceso arbitrario por nombre.
// POST /api/processes/run
func (h *ProcessHandler) Run(c *fiber.Ctx) error {
	var in dto.OneCProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Run(c.Context(), GetUser(c), in)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStock lanza la actualización de existencias, de un almacén o de todos.
// POST /api/processes/update-stock
func (h *ProcessHandler) UpdateStock(c *fiber.Ctx) error {
	var in struct {
		WarehouseID string `json:"warehouse_id"`
	}
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStock(c.Context(), GetUser(c), in.WarehouseID)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// GenerateReport pide a 1C la generación de un reporte de gestión.
// POST /api/processes/generate-report
func (h *ProcessHandler) GenerateReport(c *fiber.Ctx) error {
	var in struct {
		ReportType  string `json:"report_type"`
		Period      string `json:"period"`
		StoreID     string `json:"store_id"`
		WarehouseID string `json:"warehouse_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.GenerateReport(c.Context(), GetUser(c), in.ReportType, in.Period, in.StoreID, in.WarehouseID)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}
