// Package pdf genera el reporte imprimible de la lista de compras.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  REGLA: horizonte / cobertura / urgencia                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Prioridad | Instalación | Insumo | Stock | Días |   │
//	│         Consumo/día | Pedido sugerido                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: filas urgentes / en observación / unidades         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/application/procurement"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

var _ procurement.ReorderReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorUrgent  = &props.Color{Red: 200, Green: 30, Blue: 0}
	colorWatch   = &props.Color{Red: 220, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa procurement.ReorderReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReorderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReorderPDF(
	_ context.Context,
	rows []dto.ReorderSuggestionDTO,
	rules procurement.Config,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista automática de compras", true).
		WithAuthor("SwiftStock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(rulesRow(rules))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin insumos con quiebre previsto dentro del horizonte.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("LISTA AUTOMÁTICA DE COMPRAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func rulesRow(rules procurement.Config) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Regla: quiebre previsto < %d días: pedir cobertura de %d días. Urgente < %d días.",
			rules.HorizonDays, rules.CoverageDays, rules.UrgentDays,
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Prioridad", 1, align.Left),
		h("Instalación", 3, align.Left),
		h("Insumo", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Días", 1, align.Right),
		h("Consumo/día", 1, align.Right),
		h("Pedido", 2, align.Right),
	)
}

func tableDetailRows(rows []dto.ReorderSuggestionDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		priorityColor := colorWatch
		if r.Priority == string(entity.ReorderPriorityUrgent) {
			priorityColor = colorUrgent
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(r.Priority, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Color: priorityColor,
			})),
			cell(r.FacilityName, 3, align.Left),
			cell(r.ItemName, 3, align.Left),
			cell(formatThousands(fmt.Sprint(r.ClosingStock)), 1, align.Right),
			cell(r.PredictedStockoutDays.StringFixed(1), 1, align.Right),
			cell(r.AvgDailyUsage.StringFixed(1), 1, align.Right),
			cell(formatThousands(r.SuggestedOrderQty.StringFixed(0)), 2, align.Right),
		))
	}
	return result
}

func summaryRow(rows []dto.ReorderSuggestionDTO) core.Row {
	var urgent, watch int
	total := decimal.Zero
	for _, r := range rows {
		if r.Priority == string(entity.ReorderPriorityUrgent) {
			urgent++
		} else {
			watch++
		}
		total = total.Add(r.SuggestedOrderQty)
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("Urgentes: %d   |   En observación: %d", urgent, watch),
			props.Text{Style: fontstyle.Bold, Size: 9, Top: 2},
		)),
		col.New(4).Add(text.New(
			"Unidades a pedir: "+formatThousands(total.StringFixed(0)),
			props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
