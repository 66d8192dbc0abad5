package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// SalesHandler maneja las consultas de ventas contra 1C.
type SalesHandler struct {
	uc  *usecase.SalesUseCase
	log *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase, log *logger.Logger) *SalesHandler {
	return &SalesHandler{uc: uc, log: log}
}

// GetSales devuelve el resumen, detalle y serie de ventas del período.
// GET /api/sales
func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	var f dto.SalesFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if f.Period == "" {
		f.Period = "today"
	}
	out, err := h.uc.GetSales(c.Context(), GetUser(c), f)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// GetStores lista las tiendas registradas en 1C.
// GET /api/sales/stores
func (h *SalesHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.uc.GetStores(c.Context())
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(dto.StoresResponse{Stores: stores})
}

// GetWarehouses lista los almacenes, opcionalmente filtrados por tienda.
// GET /api/sales/warehouses
func (h *SalesHandler) GetWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.uc.GetWarehouses(c.Context(), c.Query("store_id"))
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(dto.WarehousesResponse{Warehouses: warehouses})
}

// ReportPDF genera el reporte de ventas del período en PDF.
// GET /api/sales/report
func (h *SalesHandler) ReportPDF(c *fiber.Ctx) error {
	var f dto.SalesFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if f.Period == "" {
		f.Period = "today"
	}
	pdf, err := h.uc.ReportPDF(c.Context(), GetUser(c), f)
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas-`+f.Period+`.pdf"`)
	return c.Send(pdf)
}
