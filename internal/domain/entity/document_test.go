package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecomputeTotals_SumaLineasMasImpuesto(t *testing.T) {
	doc := entity.TradeDocument{Items: []entity.DocumentItem{
		{Quantity: dec("2"), UnitPrice: dec("10.50"), TaxRate: dec("19")},
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxRate: dec("0")},
		{Quantity: dec("3"), UnitPrice: dec("0.333"), TaxRate: dec("5")},
	}}
	doc.RecomputeTotals()

	assert.True(t, dec("21").Equal(doc.Items[0].Subtotal))
	assert.True(t, dec("3.99").Equal(doc.Items[0].TaxAmount))
	assert.True(t, dec("1").Equal(doc.Items[2].Subtotal))
	assert.True(t, dec("0.05").Equal(doc.Items[2].TaxAmount))

	assert.True(t, dec("122").Equal(doc.Subtotal), doc.Subtotal.String())
	assert.True(t, dec("4.04").Equal(doc.TaxTotal), doc.TaxTotal.String())
	assert.True(t, doc.Subtotal.Add(doc.TaxTotal).Equal(doc.Total))
	assert.Equal(t, 3, doc.Items[2].Position)
}

func TestDocumentKind_Estados(t *testing.T) {
	assert.Equal(t, entity.StatusDraft, entity.KindSalesQuotation.DefaultStatus())
	assert.Equal(t, entity.StatusUnpaid, entity.KindSalesInvoice.DefaultStatus())
	assert.True(t, entity.KindSalesOrder.ValidStatus("fulfilled"))
	assert.False(t, entity.KindSalesOrder.ValidStatus("paid"))
	assert.True(t, entity.KindPurchaseOrder.ValidStatus("received"))
}

func TestDocumentKind_Origen(t *testing.T) {
	src, ok := entity.KindSalesInvoice.SourceKind()
	assert.True(t, ok)
	assert.Equal(t, entity.KindSalesOrder, src)

	_, ok = entity.KindSalesQuotation.SourceKind()
	assert.False(t, ok)
}

func TestJournal_Balance(t *testing.T) {
	j := entity.Journal{Items: []entity.JournalItem{
		{Debit: dec("100")},
		{Credit: dec("60")},
		{Credit: dec("40")},
	}}
	d, c := j.Totals()
	assert.True(t, dec("100").Equal(d))
	assert.True(t, dec("100").Equal(c))
	assert.True(t, j.IsBalanced())

	j.Items = append(j.Items, entity.JournalItem{Debit: dec("1")})
	assert.False(t, j.IsBalanced())
}

func TestNetActivity_SegunNaturaleza(t *testing.T) {
	assert.True(t, dec("30").Equal(entity.NetActivity(entity.AccountTypeAsset, dec("100"), dec("70"))))
	assert.True(t, dec("-30").Equal(entity.NetActivity(entity.AccountTypeRevenue, dec("100"), dec("70"))))
	assert.True(t, dec("30").Equal(entity.NetActivity(entity.AccountTypeLiability, dec("70"), dec("100"))))
}

func TestFormatNumber_RellenaConsecutivo(t *testing.T) {
	assert.Equal(t, "INV-2026-00042", entity.FormatNumber(entity.KindSalesInvoice.Prefix(), 2026, 42))
	assert.Equal(t, "JV-2025-123456", entity.FormatNumber(entity.PrefixJournal, 2025, 123456))
}
