package ports

import (
	"context"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
)

// SalesReportGenerator genera la representación PDF de un reporte de ventas.
type SalesReportGenerator interface {
	GenerateSalesPDF(ctx context.Context, filter dto.SalesFilter, data *dto.SalesResponse) ([]byte, error)
}
