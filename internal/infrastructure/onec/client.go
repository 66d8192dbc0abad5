// Package onec implementa el cliente HTTP hacia el ERP 1C.
// Sin ONEC_BASE_URL configurado el cliente opera en modo demo y devuelve
// datos fijos, igual que el entorno de demostración original.
package onec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/ports"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa OneCService.
var _ ports.OneCService = (*Client)(nil)

// Config credenciales y límites del cliente.
type Config struct {
	BaseURL  string // vacío = modo demo
	User     string
	Password string
	Timeout  time.Duration
}

// Client adaptador del puerto OneCService sobre la API REST de 1C.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. El timeout acota toda llamada al ERP para que
// una 1C colgada no cuelgue la request del usuario.
func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) demo() bool { return c.cfg.BaseURL == "" }

// GetSalesData consulta ventas del período con los filtros dados.
func (c *Client) GetSalesData(ctx context.Context, f dto.SalesFilter) (*dto.SalesResponse, error) {
	if c.demo() {
		return demoSales(f), nil
	}
	q := url.Values{}
	q.Set("period", f.Period)
	if f.StoreID != "" {
		q.Set("store_id", f.StoreID)
	}
	if f.WarehouseID != "" {
		q.Set("warehouse_id", f.WarehouseID)
	}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	var out dto.SalesResponse
	if err := c.get(ctx, "/sales?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStores lista las tiendas registradas en 1C.
func (c *Client) GetStores(ctx context.Context) ([]dto.StoreInfo, error) {
	if c.demo() {
		return demoStores(), nil
	}
	var out dto.StoresResponse
	if err := c.get(ctx, "/stores", &out); err != nil {
		return nil, err
	}
	return out.Stores, nil
}

// GetWarehouses lista los almacenes, opcionalmente filtrados por tienda.
func (c *Client) GetWarehouses(ctx context.Context, storeID string) ([]dto.WarehouseInfo, error) {
	if c.demo() {
		return demoWarehouses(storeID), nil
	}
	path := "/warehouses"
	if storeID != "" {
		path += "?store_id=" + url.QueryEscape(storeID)
	}
	var out dto.WarehousesResponse
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Warehouses, nil
}

// RunProcess lanza un proceso con nombre en 1C y devuelve su resultado.
// Cada invocación lleva un id de correlación para poder rastrearla en ambos lados.
func (c *Client) RunProcess(ctx context.Context, req dto.OneCProcessRequest) (*dto.OneCProcessResponse, error) {
	processID := uuid.New().String()
	c.log.Info().
		Str("process", req.ProcessName).
		Str("process_id", processID).
		Msg("lanzando proceso 1C")

	if c.demo() {
		return demoProcess(req, processID), nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("onec: serializar proceso: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/processes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("onec: construir request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", processID)
	httpReq.SetBasicAuth(c.cfg.User, c.cfg.Password)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: 1C respondió %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	var out dto.OneCProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrBackendUnavailable, err)
	}
	if out.ProcessID == "" {
		out.ProcessID = processID
	}
	return &out, nil
}

// get ejecuta un GET autenticado y decodifica JSON en out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("onec: construir request: %w", err)
	}
	httpReq.SetBasicAuth(c.cfg.User, c.cfg.Password)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drenar para reutilizar la conexión.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: 1C respondió %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// ── Datos demo ────────────────────────────────────────────────────────────────

func demoSales(f dto.SalesFilter) *dto.SalesResponse {
	period := f.Period
	if period == "" {
		period = "today"
	}
	items := []dto.SalesItem{
		{ProductID: "P-001", ProductName: "Café molido 500g", Quantity: 45, Price: decimal.NewFromInt(120), Total: decimal.NewFromInt(5400), StoreID: "1", StoreName: "Tienda Centro"},
		{ProductID: "P-014", ProductName: "Té verde 100g", Quantity: 38, Price: decimal.NewFromInt(95), Total: decimal.NewFromInt(3610), StoreID: "1", StoreName: "Tienda Centro"},
		{ProductID: "P-027", ProductName: "Chocolate 70% 200g", Quantity: 52, Price: decimal.NewFromInt(140), Total: decimal.NewFromInt(7280), StoreID: "2", StoreName: "Tienda Norte"},
	}
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.Total)
		count += int(it.Quantity)
	}
	comparison := 12.5
	return &dto.SalesResponse{
		Summary: dto.SalesSummary{
			Period:               period,
			TotalSales:           total,
			TotalItems:           count,
			AvgCheck:             total.Div(decimal.NewFromInt(int64(len(items)))).Round(2),
			ComparisonPrevPeriod: &comparison,
		},
		Items: items,
		ChartData: []dto.ChartPoint{
			{Date: "2025-04-16", Amount: decimal.NewFromInt(18200)},
			{Date: "2025-04-17", Amount: decimal.NewFromInt(12500)},
			{Date: "2025-04-18", Amount: decimal.NewFromInt(15000)},
		},
	}
}

func demoStores() []dto.StoreInfo {
	return []dto.StoreInfo{
		{ID: "1", Name: "Tienda Centro", Address: "Av. Principal 100"},
		{ID: "2", Name: "Tienda Norte", Address: "Centro Comercial Galería"},
		{ID: "3", Name: "Tienda Sur", Address: "Av. Moscú 35"},
	}
}

func demoWarehouses(storeID string) []dto.WarehouseInfo {
	all := []dto.WarehouseInfo{
		{ID: "1", Name: "Almacén principal", StoreID: "1"},
		{ID: "2", Name: "Almacén de respaldo", StoreID: "1"},
		{ID: "3", Name: "Almacén principal", StoreID: "2"},
		{ID: "4", Name: "Almacén principal", StoreID: "3"},
	}
	if storeID == "" {
		return all
	}
	var filtered []dto.WarehouseInfo
	for _, w := range all {
		if w.StoreID == storeID {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

func demoProcess(req dto.OneCProcessRequest, processID string) *dto.OneCProcessResponse {
	switch req.ProcessName {
	case "UpdateStock":
		return &dto.OneCProcessResponse{
			Success:   true,
			Message:   "Existencias actualizadas correctamente",
			ProcessID: processID,
		}
	case "GenerateReport":
		reportType := req.Parameters["reportType"]
		period := req.Parameters["period"]
		if period == "" {
			period = "today"
		}
		return &dto.OneCProcessResponse{
			Success:   true,
			Message:   fmt.Sprintf("Reporte %s generado correctamente", reportType),
			Result:    map[string]string{"report_url": fmt.Sprintf("/reports/%s_%s.xlsx", reportType, period)},
			ProcessID: processID,
		}
	default:
		return &dto.OneCProcessResponse{
			Success:   true,
			Message:   fmt.Sprintf("Proceso %s ejecutado", req.ProcessName),
			ProcessID: processID,
		}
	}
}
