package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// PrintUseCase genera el PDF y el XML UBL de una factura de venta.
type PrintUseCase struct {
	invoiceRepo  repository.DocumentRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.PartyRepository
	productRepo  repository.ProductRepository
	pdf          InvoicePDFGenerator
	xml          InvoiceXMLBuilder
}

// NewPrintUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPrintUseCase(
	invoiceRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLBuilder,
) *PrintUseCase {
	return &PrintUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound si la factura no existe o es de otra empresa.
func (uc *PrintUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	in, err := uc.load(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateInvoicePDF(ctx, *in)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, in.Invoice.Number + ".pdf", nil
}

// DownloadInvoiceXML devuelve la factura como UBL 2.1.
func (uc *PrintUseCase) DownloadInvoiceXML(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	in, err := uc.load(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xml.BuildInvoiceXML(ctx, *in)
	if err != nil {
		return nil, "", fmt.Errorf("ubl: generación fallida: %w", err)
	}
	return out, in.Invoice.Number + ".xml", nil
}

func (uc *PrintUseCase) load(ctx context.Context, companyID, invoiceID string) (*InvoicePrint, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("print: obtener factura: %w", err)
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("print: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.PartyID)
	if err != nil {
		return nil, fmt.Errorf("print: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]PrintLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		name := ""
		if it.ProductID != "" {
			if p, pErr := uc.productRepo.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
				name = p.Name
			}
		}
		lines = append(lines, PrintLine{DocumentItem: it, ProductName: name})
	}
	return &InvoicePrint{Invoice: inv, Company: company, Customer: customer, Lines: lines}, nil
}
