package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/infrastructure/export"
)

var _ analytics.TableRenderer = (*export.XLSXRenderer)(nil)

func TestXLSXRenderer_EscribeTituloEncabezadosYFilas(t *testing.T) {
	table := dto.ReportTable{
		Title:   "Tax Report",
		Headers: []string{"Type", "Rate %", "Taxable", "Tax"},
		Rows: [][]string{
			{"Output", "19", "1.000,00", "190,00"},
			{"Net payable", "", "", "190,00"},
		},
	}
	out, err := export.NewXLSXRenderer().Render(context.Background(), table)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tax Report", title)

	header, _ := f.GetCellValue("Report", "D3")
	assert.Equal(t, "Tax", header)

	first, _ := f.GetCellValue("Report", "A4")
	assert.Equal(t, "Output", first)
	last, _ := f.GetCellValue("Report", "A5")
	assert.Equal(t, "Net payable", last)
}
