package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

const (
	msgRequired = "This field is required"
	msgNotFound = "Referenced record not found"
	msgDate     = "Must be a date in YYYY-MM-DD format"
)

// DocumentUseCase CRUD de un tipo de documento comercial (cotización, pedido, factura, orden de compra
// o factura de compra). Valida contraparte, productos y documento de origen contra la empresa y
// recalcula totales en cada escritura.
type DocumentUseCase struct {
	kind     entity.DocumentKind
	repo     repository.DocumentRepository
	sources  repository.DocumentRepository // nil si el tipo no tiene documento de origen
	parties  repository.PartyRepository
	products repository.ProductRepository
	seq      repository.SequenceRepository
	payments repository.PaymentUsage // solo facturas
}

// DocumentDeps dependencias de NewDocumentUseCase.
type DocumentDeps struct {
	Documents repository.DocumentRepository
	Sources   repository.DocumentRepository
	Parties   repository.PartyRepository
	Products  repository.ProductRepository
	Sequences repository.SequenceRepository
	Payments  repository.PaymentUsage
}

// NewDocumentUseCase construye el caso de uso para el tipo de deps.Documents.
func NewDocumentUseCase(deps DocumentDeps) *DocumentUseCase {
	return &DocumentUseCase{
		kind:     deps.Documents.Kind(),
		repo:     deps.Documents,
		sources:  deps.Sources,
		parties:  deps.Parties,
		products: deps.Products,
		seq:      deps.Sequences,
		payments: deps.Payments,
	}
}

// Kind tipo de documento que gestiona.
func (uc *DocumentUseCase) Kind() entity.DocumentKind { return uc.kind }

// campos json según tipo
func (uc *DocumentUseCase) partyField() string {
	if uc.kind.IsSales() {
		return "customer_id"
	}
	return "vendor_id"
}

func (uc *DocumentUseCase) sourceField() string {
	if uc.kind == entity.KindSalesOrder {
		return "quotation_id"
	}
	return "order_id"
}

func (uc *DocumentUseCase) dueField() string {
	switch uc.kind {
	case entity.KindSalesQuotation:
		return "valid_until"
	case entity.KindSalesOrder, entity.KindPurchaseOrder:
		return "expected_delivery_date"
	}
	return "due_date"
}

func (uc *DocumentUseCase) partyID(in dto.DocumentRequest) *string {
	if uc.kind.IsSales() {
		return in.CustomerID
	}
	return in.VendorID
}

func (uc *DocumentUseCase) sourceID(in dto.DocumentRequest) *string {
	if _, ok := uc.kind.SourceKind(); !ok {
		return nil
	}
	if uc.kind == entity.KindSalesOrder {
		return in.QuotationID
	}
	return in.OrderID
}

func (uc *DocumentUseCase) dueDate(in dto.DocumentRequest) *string {
	switch uc.kind {
	case entity.KindSalesQuotation:
		return in.ValidUntil
	case entity.KindSalesOrder, entity.KindPurchaseOrder:
		return in.ExpectedDeliveryDate
	}
	return in.DueDate
}

// Create alta con al menos una línea; el número se asigna con el prefijo del tipo.
func (uc *DocumentUseCase) Create(ctx context.Context, companyID, userID string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	verr := &domain.ValidationError{}
	if p := uc.partyID(in); p == nil || *p == "" {
		verr.Add(uc.partyField(), msgRequired)
	}
	if len(in.Items) == 0 {
		verr.Add("items", "At least one item is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &entity.TradeDocument{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Kind:      uc.kind,
		Date:      today(),
		Status:    uc.kind.DefaultStatus(),
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, d, in); err != nil {
		return nil, err
	}
	n, err := uc.seq.Next(ctx, companyID, uc.kind.Prefix(), d.Date.Year())
	if err != nil {
		return nil, err
	}
	d.Number = entity.FormatNumber(uc.kind.Prefix(), d.Date.Year(), n)
	d.UpdatedAt = now
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, d.ID)
}

// apply copia los campos presentes del request, valida referencias y recalcula totales.
func (uc *DocumentUseCase) apply(ctx context.Context, d *entity.TradeDocument, in dto.DocumentRequest) error {
	verr := &domain.ValidationError{}

	if p := uc.partyID(in); p != nil {
		d.PartyID = *p
		if d.PartyID == "" {
			verr.Add(uc.partyField(), msgRequired)
		} else {
			party, err := uc.parties.GetByID(ctx, d.PartyID)
			if err != nil {
				return err
			}
			if party == nil || party.CompanyID != d.CompanyID {
				verr.Add(uc.partyField(), msgNotFound)
			}
		}
	}
	if s := uc.sourceID(in); s != nil {
		d.SourceID = *s
		if d.SourceID != "" {
			src, err := uc.sources.GetByID(ctx, d.SourceID)
			if err != nil {
				return err
			}
			if src == nil || src.CompanyID != d.CompanyID {
				verr.Add(uc.sourceField(), msgNotFound)
			}
		}
	}
	if in.Date != nil {
		if t, ok := parseDate(*in.Date); ok {
			d.Date = t
		} else {
			verr.Add("date", msgDate)
		}
	}
	if due := uc.dueDate(in); due != nil {
		if *due == "" {
			d.DueDate = nil
		} else if t, ok := parseDate(*due); ok {
			d.DueDate = &t
		} else {
			verr.Add(uc.dueField(), msgDate)
		}
	}
	if in.Status != nil {
		if uc.kind.ValidStatus(*in.Status) {
			d.Status = *in.Status
		} else {
			verr.Add("status", fmt.Sprintf("Must be one of: %v", uc.kind.Statuses()))
		}
	}
	if in.Note != nil {
		d.Note = *in.Note
	}
	if in.Items != nil {
		items, err := uc.buildItems(ctx, d.CompanyID, in.Items, verr)
		if err != nil {
			return err
		}
		d.Items = items
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if in.Items != nil {
		d.RecomputeTotals()
	}
	return nil
}

// buildItems resuelve productos; sin tax_rate se toma la del producto.
func (uc *DocumentUseCase) buildItems(ctx context.Context, companyID string, in []dto.DocumentItemRequest, verr *domain.ValidationError) ([]entity.DocumentItem, error) {
	items := make([]entity.DocumentItem, 0, len(in))
	for i, it := range in {
		field := fmt.Sprintf("items[%d]", i)
		item := entity.DocumentItem{
			ID:          uuid.New().String(),
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     decimal.Zero,
		}
		if it.ProductID != "" {
			p, err := uc.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil || p.CompanyID != companyID {
				verr.Add(field+".product_id", msgNotFound)
			} else {
				item.TaxRate = p.TaxRate
				if item.Description == "" {
					item.Description = p.Name
				}
			}
		} else if it.Description == "" {
			verr.Add(field+".description", "Description is required when product_id is empty")
		}
		if it.TaxRate != nil {
			item.TaxRate = *it.TaxRate
		}
		if !it.Quantity.IsPositive() {
			verr.Add(field+".quantity", "Must be greater than 0")
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(field+".unit_price", "Must be greater than or equal to 0")
		}
		items = append(items, item)
	}
	return items, nil
}

func (uc *DocumentUseCase) get(ctx context.Context, companyID, id string) (*entity.TradeDocument, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// GetByID documento con líneas.
func (uc *DocumentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	d, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// List cabeceras filtradas por estado, contraparte y rango de fechas.
func (uc *DocumentUseCase) List(ctx context.Context, companyID string, q dto.DocumentQuery) (*dto.DocumentListResponse, error) {
	q.Normalize()
	f := repository.DocumentFilter{
		ListParams: repository.ListParams{Limit: q.Limit, Offset: q.Offset, Search: q.Q},
		Status:     q.Status,
		PartyID:    q.VendorID,
	}
	if uc.kind.IsSales() {
		f.PartyID = q.CustomerID
	}
	verr := &domain.ValidationError{}
	for field, raw := range map[string]string{"from": q.From, "to": q.To} {
		if raw == "" {
			continue
		}
		t, ok := parseDate(raw)
		if !ok {
			verr.Add(field, msgDate)
			continue
		}
		if field == "from" {
			f.From = &t
		} else {
			f.To = &t
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

// Update cambios parciales; items, si viene, reemplaza todas las líneas.
func (uc *DocumentUseCase) Update(ctx context.Context, companyID, id string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	d, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Items != nil && len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "At least one item is required")
	}
	if s := uc.sourceID(in); s != nil && *s == d.ID {
		return nil, domain.NewValidationError(uc.sourceField(), msgNotFound)
	}
	prevParty := d.PartyID
	if err := uc.apply(ctx, d, in); err != nil {
		return nil, err
	}
	if d.AmountPaid.IsPositive() {
		verr := &domain.ValidationError{}
		if d.PartyID != prevParty {
			verr.Add(uc.partyField(), "Cannot change party while payments are applied")
		}
		if d.Total.LessThan(d.AmountPaid) {
			verr.Add("items", "Total cannot be lower than the amount already paid")
		}
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d, in.Items != nil); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete borra el documento. Una factura con pagos aplicados o un documento referenciado
// por otro devuelven ErrConflict.
func (uc *DocumentUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	if uc.payments != nil && uc.kind.IsInvoice() {
		used, err := uc.payments.InvoiceHasPayments(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrConflict
		}
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func toDocumentResponse(d *entity.TradeDocument) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:        d.ID,
		Number:    d.Number,
		Date:      dto.FormatDate(d.Date),
		Status:    d.Status,
		Subtotal:  d.Subtotal,
		TaxTotal:  d.TaxTotal,
		Total:     d.Total,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Kind.IsSales() {
		resp.CustomerID, resp.CustomerName = d.PartyID, d.PartyName
	} else {
		resp.VendorID, resp.VendorName = d.PartyID, d.PartyName
	}
	switch d.Kind {
	case entity.KindSalesQuotation:
		resp.ValidUntil = dto.FormatDatePtr(d.DueDate)
	case entity.KindSalesOrder:
		resp.QuotationID = d.SourceID
		resp.ExpectedDeliveryDate = dto.FormatDatePtr(d.DueDate)
	case entity.KindPurchaseOrder:
		resp.ExpectedDeliveryDate = dto.FormatDatePtr(d.DueDate)
	case entity.KindSalesInvoice, entity.KindPurchaseInvoice:
		resp.OrderID = d.SourceID
		resp.DueDate = dto.FormatDatePtr(d.DueDate)
		paid, balance := d.AmountPaid, d.BalanceDue()
		resp.AmountPaid, resp.BalanceDue = &paid, &balance
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, dto.DocumentItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
			TaxAmount:   it.TaxAmount,
			Total:       it.Total,
		})
	}
	return resp
}

func parseDate(s string) (time.Time, bool) {
	t, err := dto.ParseDate(s)
	return t, err == nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
