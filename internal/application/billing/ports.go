package billing

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InvoicePrint datos completos de una factura de venta para su representación (PDF o XML).
type InvoicePrint struct {
	Invoice  *entity.TradeDocument
	Company  *entity.Company
	Customer *entity.Party
	Lines    []PrintLine
}

// PrintLine línea de factura con el nombre del producto resuelto.
type PrintLine struct {
	entity.DocumentItem
	ProductName string
}

// Label descripción visible de la línea: la propia o, si falta, el nombre del producto.
func (l PrintLine) Label() string {
	if l.Description != "" {
		return l.Description
	}
	return l.ProductName
}

// InvoicePDFGenerator genera la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, in InvoicePrint) ([]byte, error)
}

// InvoiceXMLBuilder serializa una factura como documento UBL 2.1.
type InvoiceXMLBuilder interface {
	BuildInvoiceXML(ctx context.Context, in InvoicePrint) ([]byte, error)
}
