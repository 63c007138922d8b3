package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	appbilling "github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
)

var (
	_ appbilling.InvoicePDFGenerator = (*pdf.MarotoPDFGenerator)(nil)
	_ analytics.TableRenderer        = (*pdf.ReportRenderer)(nil)
)

func TestGenerateInvoicePDF_DevuelvePDF(t *testing.T) {
	inv := &entity.TradeDocument{
		Number: "INV-2026-00001",
		Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status: entity.StatusUnpaid,
		Items: []entity.DocumentItem{{
			Description: "Consultoría",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(100),
			TaxRate:     decimal.NewFromInt(19),
		}},
	}
	inv.RecomputeTotals()

	out, err := pdf.NewMarotoPDFGenerator("es-CO").GenerateInvoicePDF(context.Background(), appbilling.InvoicePrint{
		Invoice:  inv,
		Company:  &entity.Company{Name: "Acme", TaxID: "900", Currency: "COP"},
		Customer: &entity.Party{Name: "Cliente", TaxID: "800"},
		Lines:    []appbilling.PrintLine{{DocumentItem: inv.Items[0]}},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestReportRenderer_DevuelvePDF(t *testing.T) {
	r := pdf.NewReportRenderer()
	out, err := r.Render(context.Background(), dto.ReportTable{
		Title:   "Inventory Valuation",
		Headers: []string{"Code", "Product", "Value"},
		Rows:    [][]string{{"P-1", "Tornillo", "10,00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
	assert.Equal(t, "application/pdf", r.ContentType())
}
