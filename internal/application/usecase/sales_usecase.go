package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/ports"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// SalesUseCase consultas de ventas contra 1C, con caché y auditoría.
type SalesUseCase struct {
	onec  ports.OneCService
	cache ports.SalesCache
	pdf   ports.SalesReportGenerator
	audit *AuditUseCase
	log   *logger.Logger
}

// NewSalesUseCase construye el caso de uso de ventas.
func NewSalesUseCase(
	onec ports.OneCService,
	cache ports.SalesCache,
	pdf ports.SalesReportGenerator,
	audit *AuditUseCase,
	log *logger.Logger,
) *SalesUseCase {
	return &SalesUseCase{onec: onec, cache: cache, pdf: pdf, audit: audit, log: log}
}

// GetSales consulta las ventas del período. La vista se audita después de
// obtener los datos; si la auditoría falla, la request falla.
func (uc *SalesUseCase) GetSales(ctx context.Context, user *entity.User, f dto.SalesFilter) (*dto.SalesResponse, error) {
	if f.Period == "" {
		f.Period = "today"
	}

	key := salesCacheKey(f)
	data, hit := uc.cache.GetSales(ctx, key)
	if !hit {
		var err error
		data, err = uc.onec.GetSalesData(ctx, f)
		if err != nil {
			return nil, err
		}
		uc.cache.SetSales(ctx, key, data)
	}

	details := fmt.Sprintf("Consulta de ventas, período: %s", f.Period)
	if err := uc.audit.Record(ctx, user.ID, entity.ActionViewSales, details, ""); err != nil {
		return nil, err
	}
	return data, nil
}

// GetStores lista las tiendas desde 1C.
func (uc *SalesUseCase) GetStores(ctx context.Context) ([]dto.StoreInfo, error) {
	return uc.onec.GetStores(ctx)
}

// GetWarehouses lista los almacenes desde 1C, opcionalmente por tienda.
func (uc *SalesUseCase) GetWarehouses(ctx context.Context, storeID string) ([]dto.WarehouseInfo, error) {
	return uc.onec.GetWarehouses(ctx, storeID)
}

// ReportPDF genera el PDF del reporte de ventas del período y audita la
// generación (misma política: auditar tras el éxito, abortar si no se pudo).
func (uc *SalesUseCase) ReportPDF(ctx context.Context, user *entity.User, f dto.SalesFilter) ([]byte, error) {
	if f.Period == "" {
		f.Period = "today"
	}
	data, err := uc.onec.GetSalesData(ctx, f)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.pdf.GenerateSalesPDF(ctx, f, data)
	if err != nil {
		return nil, fmt.Errorf("generar reporte PDF: %w", err)
	}
	details := fmt.Sprintf("Reporte PDF de ventas, período: %s", f.Period)
	if err := uc.audit.Record(ctx, user.ID, entity.ActionGenerateReport, details, ""); err != nil {
		return nil, err
	}
	return pdfBytes, nil
}

// salesCacheKey llave estable por combinación de filtros.
func salesCacheKey(f dto.SalesFilter) string {
	return fmt.Sprintf("%s|%s|%s|%s", f.Period, f.StoreID, f.WarehouseID, f.CategoryID)
}
