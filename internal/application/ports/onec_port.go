package ports

import (
	"context"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
)

// OneCService puerto hacia el ERP 1C. Los fallos del colaborador externo se
// reportan como domain.ErrBackendUnavailable (reintenta el cliente); nunca
// tumban los subsistemas de acceso o notificaciones.
type OneCService interface {
	GetSalesData(ctx context.Context, f dto.SalesFilter) (*dto.SalesResponse, error)
	GetStores(ctx context.Context) ([]dto.StoreInfo, error)
	GetWarehouses(ctx context.Context, storeID string) ([]dto.WarehouseInfo, error)
	RunProcess(ctx context.Context, req dto.OneCProcessRequest) (*dto.OneCProcessResponse, error)
}

// SalesCache caché opcional de respuestas de ventas. Una implementación nil-safe
// (Noop) permite correr sin Redis.
type SalesCache interface {
	GetSales(ctx context.Context, key string) (*dto.SalesResponse, bool)
	SetSales(ctx context.Context, key string, resp *dto.SalesResponse)
}
