package ubl_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/ubl"
)

var _ appbilling.InvoiceXMLBuilder = (*ubl.InvoiceBuilder)(nil)

func sampleInvoice() appbilling.InvoicePrint {
	inv := &entity.TradeDocument{
		Number: "INV-2026-00007",
		Date:   time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		Items: []entity.DocumentItem{
			{Description: "A", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(19)},
			{Description: "B", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(30), TaxRate: decimal.Zero},
			{Description: "C", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(19)},
		},
	}
	inv.RecomputeTotals()
	lines := make([]appbilling.PrintLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, appbilling.PrintLine{DocumentItem: it})
	}
	return appbilling.InvoicePrint{
		Invoice:  inv,
		Company:  &entity.Company{Name: "Acme SAS", TaxID: "900123", Currency: "COP"},
		Customer: &entity.Party{Name: "Cliente Uno", TaxID: "800456"},
		Lines:    lines,
	}
}

func TestBuildInvoiceXML_EstructuraUBL(t *testing.T) {
	out, err := ubl.NewInvoiceBuilder().BuildInvoiceXML(context.Background(), sampleInvoice())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, ubl.NsInvoice, root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "INV-2026-00007", root.FindElement("./cbc:ID").Text())
	assert.Equal(t, "2026-05-04", root.FindElement("./cbc:IssueDate").Text())
	assert.Equal(t, "COP", root.FindElement("./cbc:DocumentCurrencyCode").Text())
	assert.Len(t, root.FindElements("./cac:InvoiceLine"), 3)

	// 19% agrupa A y C; 0% solo B
	subs := root.FindElements("./cac:TaxTotal/cac:TaxSubtotal")
	require.Len(t, subs, 2)
	assert.Equal(t, "0.00", subs[0].FindElement("./cac:TaxCategory/cbc:Percent").Text())
	assert.Equal(t, "200.00", subs[1].FindElement("./cbc:TaxableAmount").Text())
	assert.Equal(t, "38.00", subs[1].FindElement("./cbc:TaxAmount").Text())

	payable := root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount")
	assert.Equal(t, "268.00", payable.Text())
	assert.Equal(t, "COP", payable.SelectAttrValue("currencyID", ""))
}

func TestBuildInvoiceXML_SinCliente_Falla(t *testing.T) {
	in := sampleInvoice()
	in.Customer = nil
	_, err := ubl.NewInvoiceBuilder().BuildInvoiceXML(context.Background(), in)
	assert.Error(t, err)
}
