package analytics

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// Formatos de salida de reportes.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// TableRenderer convierte un reporte tabular en un archivo (xlsx o pdf).
type TableRenderer interface {
	Render(ctx context.Context, table dto.ReportTable) ([]byte, error)
	ContentType() string
}
