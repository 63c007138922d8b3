package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

const gridCols = 12

// ReportRenderer implementa analytics.TableRenderer: una tabla simple con título.
type ReportRenderer struct{}

// NewReportRenderer construye el renderer.
func NewReportRenderer() *ReportRenderer { return &ReportRenderer{} }

func (r *ReportRenderer) ContentType() string { return "application/pdf" }

func (r *ReportRenderer) Render(_ context.Context, table dto.ReportTable) ([]byte, error) {
	m := newDocument(table.Title, "Contable API")

	m.AddRows(row.New(12).Add(col.New(gridCols).Add(
		text.New(table.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableRow(table.Headers, widths(len(table.Headers)), true))
	for _, values := range table.Rows {
		m.AddRows(tableRow(values, widths(len(table.Headers)), false))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// widths reparte las 12 columnas de la grilla; la primera se lleva el sobrante.
func widths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridCols {
		n = gridCols
	}
	out := make([]int, n)
	for i := range out {
		out[i] = gridCols / n
	}
	out[0] += gridCols % n
	return out
}

func tableRow(values []string, sizes []int, header bool) core.Row {
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		p := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		if i > 0 {
			p.Align = align.Right
		}
		if header {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		cols = append(cols, col.New(size).Add(text.New(v, p)))
	}
	return row.New(6).Add(cols...)
}
