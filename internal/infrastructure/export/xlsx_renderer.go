// Package export renderiza reportes tabulares como hojas de cálculo.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

const sheetName = "Report"

// XLSXRenderer implementa analytics.TableRenderer con excelize.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

// ContentType MIME de un libro Office Open XML.
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe el título en A1, los encabezados en la fila 3 y los datos a partir de la 4.
func (r *XLSXRenderer) Render(_ context.Context, table dto.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", table.Title); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo título: %w", err)
	}

	if err := writeRow(f, 3, table.Headers); err != nil {
		return nil, err
	}
	if len(table.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), 3)
		if err := f.SetCellStyle(sheetName, "A3", last, bold); err != nil {
			return nil, fmt.Errorf("xlsx: estilo encabezados: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(table.Headers))
		if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
		}
	}
	for i, row := range table.Rows {
		if err := writeRow(f, 4+i, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", rowNum, err)
	}
	return nil
}
