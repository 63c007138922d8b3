// Package ubl serializa facturas de venta como documentos OASIS UBL 2.1 (Invoice-2).
package ubl

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Contable-api/internal/application/billing"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	unitCode = "EA" // UN/ECE rec 20: each
	taxVAT   = "VAT"
)

// InvoiceBuilder implementa billing.InvoiceXMLBuilder con etree.
type InvoiceBuilder struct{}

// NewInvoiceBuilder crea el builder.
func NewInvoiceBuilder() *InvoiceBuilder { return &InvoiceBuilder{} }

// BuildInvoiceXML genera el documento Invoice con emisor, cliente, impuestos por tarifa, totales y líneas.
func (b *InvoiceBuilder) BuildInvoiceXML(_ context.Context, in appbilling.InvoicePrint) ([]byte, error) {
	if in.Invoice == nil || in.Company == nil || in.Customer == nil {
		return nil, fmt.Errorf("ubl: faltan invoice, company o customer")
	}
	inv := in.Invoice
	currency := in.Company.Currency
	if currency == "" {
		currency = "USD"
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", inv.Number)
	cbc(root, "IssueDate", inv.Date.Format("2006-01-02"))
	if inv.DueDate != nil {
		cbc(root, "DueDate", inv.DueDate.Format("2006-01-02"))
	}
	cbc(root, "InvoiceTypeCode", "380") // UNCL1001: commercial invoice
	if inv.Note != "" {
		cbc(root, "Note", inv.Note)
	}
	cbc(root, "DocumentCurrencyCode", currency)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(in.Lines)))

	party(root.CreateElement("cac:AccountingSupplierParty"), in.Company.Name, in.Company.TaxID, in.Company.Address, in.Company.Email)
	party(root.CreateElement("cac:AccountingCustomerParty"), in.Customer.Name, in.Customer.TaxID, in.Customer.Address, in.Customer.Email)

	// TaxTotal con un TaxSubtotal por tarifa
	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "TaxAmount", inv.TaxTotal, currency)
	for _, s := range subtotalsByRate(in.Lines) {
		sub := taxTotal.CreateElement("cac:TaxSubtotal")
		amount(sub, "TaxableAmount", s.taxable, currency)
		amount(sub, "TaxAmount", s.tax, currency)
		taxCategory(sub, s.rate)
	}

	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	amount(lmt, "LineExtensionAmount", inv.Subtotal, currency)
	amount(lmt, "TaxExclusiveAmount", inv.Subtotal, currency)
	amount(lmt, "TaxInclusiveAmount", inv.Total, currency)
	amount(lmt, "PrepaidAmount", inv.AmountPaid, currency)
	amount(lmt, "PayableAmount", inv.BalanceDue(), currency)

	for i, l := range in.Lines {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", strconv.Itoa(i+1))
		q := cbc(line, "InvoicedQuantity", l.Quantity.String())
		q.CreateAttr("unitCode", unitCode)
		amount(line, "LineExtensionAmount", l.Subtotal, currency)
		lt := line.CreateElement("cac:TaxTotal")
		amount(lt, "TaxAmount", l.TaxAmount, currency)
		item := line.CreateElement("cac:Item")
		cbc(item, "Description", l.Label())
		cbc(item, "Name", l.Label())
		if l.ProductID != "" {
			cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", l.ProductID)
		}
		ctc := item.CreateElement("cac:ClassifiedTaxCategory")
		cbc(ctc, "Percent", l.TaxRate.StringFixed(2))
		cbc(ctc.CreateElement("cac:TaxScheme"), "ID", taxVAT)
		amount(line.CreateElement("cac:Price"), "PriceAmount", l.UnitPrice, currency)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar: %w", err)
	}
	return out, nil
}

func cbc(parent *etree.Element, local, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + local)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, local string, v decimal.Decimal, currency string) {
	el := cbc(parent, local, v.StringFixed(2))
	el.CreateAttr("currencyID", currency)
}

func party(parent *etree.Element, name, taxID, address, email string) {
	p := parent.CreateElement("cac:Party")
	if taxID != "" {
		cbc(p.CreateElement("cac:PartyIdentification"), "ID", taxID)
	}
	cbc(p.CreateElement("cac:PartyName"), "Name", name)
	if address != "" {
		cbc(p.CreateElement("cac:PostalAddress"), "StreetName", address)
	}
	pts := p.CreateElement("cac:PartyTaxScheme")
	cbc(pts, "RegistrationName", name)
	if taxID != "" {
		cbc(pts, "CompanyID", taxID)
	}
	cbc(pts.CreateElement("cac:TaxScheme"), "ID", taxVAT)
	if email != "" {
		cbc(p.CreateElement("cac:Contact"), "ElectronicMail", email)
	}
}

func taxCategory(parent *etree.Element, rate decimal.Decimal) {
	tc := parent.CreateElement("cac:TaxCategory")
	cbc(tc, "Percent", rate.StringFixed(2))
	cbc(tc.CreateElement("cac:TaxScheme"), "ID", taxVAT)
}

type rateSubtotal struct {
	rate    decimal.Decimal
	taxable decimal.Decimal
	tax     decimal.Decimal
}

// subtotalsByRate agrupa base e impuesto por tarifa, en orden ascendente de tarifa.
func subtotalsByRate(lines []appbilling.PrintLine) []rateSubtotal {
	byRate := map[string]*rateSubtotal{}
	for _, l := range lines {
		key := l.TaxRate.StringFixed(2)
		s, ok := byRate[key]
		if !ok {
			s = &rateSubtotal{rate: l.TaxRate}
			byRate[key] = s
		}
		s.taxable = s.taxable.Add(l.Subtotal)
		s.tax = s.tax.Add(l.TaxAmount)
	}
	out := make([]rateSubtotal, 0, len(byRate))
	for _, s := range byRate {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rate.LessThan(out[j].rate) })
	return out
}
