package dto

import "github.com/shopspring/decimal"

// SalesFilter filtros de consulta de ventas hacia 1C.
type SalesFilter struct {
	Period      string `query:"period"` // today, yesterday, week, month
	StoreID     string `query:"store_id"`
	WarehouseID string `query:"warehouse_id"`
	CategoryID  string `query:"category_id"`
}

// SalesItem línea de venta tal como la reporta 1C.
type SalesItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    float64         `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	StoreID     string          `json:"store_id,omitempty"`
	StoreName   string          `json:"store_name,omitempty"`
}

// SalesSummary agregados del período.
type SalesSummary struct {
	Period               string          `json:"period"`
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalItems           int             `json:"total_items"`
	AvgCheck             decimal.Decimal `json:"avg_check"`
	ComparisonPrevPeriod *float64        `json:"comparison_prev_period,omitempty"` // % contra el período anterior
}

// ChartPoint punto de la serie para graficar ventas por día.
type ChartPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesResponse respuesta completa de ventas.
type SalesResponse struct {
	Summary   SalesSummary `json:"summary"`
	Items     []SalesItem  `json:"items"`
	ChartData []ChartPoint `json:"chart_data,omitempty"`
}

// StoreInfo tienda registrada en 1C.
type StoreInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// WarehouseInfo almacén registrado en 1C.
type WarehouseInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StoreID string `json:"store_id,omitempty"`
}

// StoresResponse lista de tiendas.
type StoresResponse struct {
	Stores []StoreInfo `json:"stores"`
}

// WarehousesResponse lista de almacenes.
type WarehousesResponse struct {
	Warehouses []WarehouseInfo `json:"warehouses"`
}

// OneCProcessRequest solicitud de ejecución de un proceso en 1C.
type OneCProcessRequest struct {
	ProcessName string            `json:"process_name"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// OneCProcessResponse resultado de un proceso 1C.
type OneCProcessResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Result    map[string]string `json:"result,omitempty"`
	ProcessID string            `json:"process_id,omitempty"`
}
