// Package pdf implementa la representación gráfica del reporte de ventas que
// descarga la Mini App.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total ventas / Items / Ticket promedio             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Precio | Total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERIE: ventas por día del período                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// periodLabels etiquetas legibles de los períodos soportados.
var periodLabels = map[string]string{
	"today":     "Hoy",
	"yesterday": "Ayer",
	"week":      "Semana",
	"month":     "Mes",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSalesReport implementa ports.SalesReportGenerator usando Maroto v2.
type MarotoSalesReport struct{}

// NewMarotoSalesReport construye el generador.
func NewMarotoSalesReport() *MarotoSalesReport { return &MarotoSalesReport{} }

// GenerateSalesPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoSalesReport) GenerateSalesPDF(
	_ context.Context,
	filter dto.SalesFilter,
	data *dto.SalesResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Items) {
		m.AddRows(r)
	}

	if len(data.ChartData) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range chartRows(data.ChartData) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de ventas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y fecha de generación (der).
func headerRow(filter dto.SalesFilter) core.Row {
	period := periodLabels[filter.Period]
	if period == "" {
		period = filter.Period
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: agregados del período en tres columnas.
func summaryRow(s dto.SalesSummary) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 7,
			}),
		)
	}
	return row.New(16).Add(
		metric("TOTAL VENTAS", s.TotalSales.StringFixed(2)+" ₽"),
		metric("ITEMS VENDIDOS", fmt.Sprintf("%d", s.TotalItems)),
		metric("TICKET PROMEDIO", s.AvgCheck.StringFixed(2)+" ₽"),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 6, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []dto.SalesItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.0f", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// chartRows: serie de ventas por día, una fila por punto.
func chartRows(points []dto.ChartPoint) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("VENTAS POR DÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range points {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p.Date, props.Text{Size: 8, Top: 0.5, Left: 2})),
			col.New(4).Add(text.New(p.Amount.StringFixed(2)+" ₽", props.Text{
				Size: 8, Align: align.Right, Top: 0.5, Color: colorGray,
			})),
			col.New(5),
		))
	}
	return rows
}
