package usecase

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

// PaymentUseCase recaudos de clientes y pagos a proveedores aplicados a facturas.
type PaymentUseCase struct {
	repo      repository.PaymentRepository
	accounts  repository.AccountRepository
	customers repository.PartyRepository
	vendors   repository.PartyRepository
	sales     repository.DocumentRepository
	purchases repository.DocumentRepository
	seq       repository.SequenceRepository
}

// PaymentDeps dependencias del caso de uso de pagos.
type PaymentDeps struct {
	Payments         repository.PaymentRepository
	Accounts         repository.AccountRepository
	Customers        repository.PartyRepository
	Vendors          repository.PartyRepository
	SalesInvoices    repository.DocumentRepository
	PurchaseInvoices repository.DocumentRepository
	Sequences        repository.SequenceRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(d PaymentDeps) *PaymentUseCase {
	return &PaymentUseCase{
		repo:      d.Payments,
		accounts:  d.Accounts,
		customers: d.Customers,
		vendors:   d.Vendors,
		sales:     d.SalesInvoices,
		purchases: d.PurchaseInvoices,
		seq:       d.Sequences,
	}
}

// Create registra el pago. Estado por defecto posted.
func (uc *PaymentUseCase) Create(ctx context.Context, companyID, userID string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	verr := &domain.ValidationError{}
	if in.Type == nil {
		verr.Add("type", msgRequired)
	}
	if in.AccountID == nil {
		verr.Add("account_id", msgRequired)
	}
	if in.PartyID == nil {
		verr.Add("party_id", msgRequired)
	}
	if in.Amount == nil {
		verr.Add("amount", msgRequired)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Payment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      *in.Type,
		Date:      dateOrToday(in.Date),
		Status:    entity.StatusPosted,
		CreatedBy: userID,
		CreatedAt: now,
		Items:     []entity.PaymentItem{},
	}
	if err := uc.apply(ctx, p, nil, in); err != nil {
		return nil, err
	}
	number, err := nextNumber(ctx, uc.seq, companyID, entity.PrefixPayment, p.Date)
	if err != nil {
		return nil, err
	}
	p.Number = number
	p.UpdatedAt = now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, p.ID)
}

func (uc *PaymentUseCase) invoiceRepo(p *entity.Payment) repository.DocumentRepository {
	if p.InvoiceKind() == entity.KindPurchaseInvoice {
		return uc.purchases
	}
	return uc.sales
}

func (uc *PaymentUseCase) partyRepo(p *entity.Payment) repository.PartyRepository {
	if p.Type == entity.PaymentTypeVendor {
		return uc.vendors
	}
	return uc.customers
}

// apply copia los campos presentes y valida: cuenta y contraparte de la empresa, facturas del
// mismo tipo y contraparte, montos aplicados <= saldo de cada factura y suma <= monto del pago.
// previous son las aplicaciones vigentes del pago (en update) que se liberan antes de validar saldos.
func (uc *PaymentUseCase) apply(ctx context.Context, p *entity.Payment, previous []entity.PaymentItem, in dto.PaymentRequest) error {
	if in.Type != nil && *in.Type != p.Type {
		return domain.NewValidationError("type", "Payment type cannot be changed")
	}
	wasCanceled := p.Status == entity.StatusCanceled
	if in.Date != nil {
		p.Date = dateOrToday(in.Date)
	}
	if in.Amount != nil {
		p.Amount = in.Amount.Round(2)
	}
	if in.Method != nil {
		p.Method = *in.Method
	}
	if in.Reference != nil {
		p.Reference = *in.Reference
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Note != nil {
		p.Note = *in.Note
	}

	verr := &domain.ValidationError{}
	if in.AccountID != nil {
		a, err := uc.accounts.GetByID(ctx, *in.AccountID)
		if err != nil {
			return err
		}
		if a == nil || a.CompanyID != p.CompanyID {
			verr.Add("account_id", msgNotFound)
		}
		p.AccountID = *in.AccountID
	}
	if in.PartyID != nil {
		party, err := uc.partyRepo(p).GetByID(ctx, *in.PartyID)
		if err != nil {
			return err
		}
		if party == nil || party.CompanyID != p.CompanyID {
			verr.Add("party_id", msgNotFound)
		}
		p.PartyID = *in.PartyID
	}

	// saldos liberados por las aplicaciones anteriores de este mismo pago
	released := map[string]decimal.Decimal{}
	for _, it := range previous {
		released[it.InvoiceID] = released[it.InvoiceID].Add(it.Amount)
	}

	switch {
	case in.Items != nil:
		items := make([]entity.PaymentItem, 0, len(in.Items))
		seen := map[string]bool{}
		for i, it := range in.Items {
			field := fmt.Sprintf("items[%d]", i)
			if seen[it.InvoiceID] {
				verr.Add(field+".invoice_id", "Invoice is repeated")
				continue
			}
			seen[it.InvoiceID] = true
			amount := it.Amount.Round(2)
			inv, err := uc.checkInvoice(ctx, p, field, it.InvoiceID, amount, released, verr)
			if err != nil {
				return err
			}
			if inv == nil {
				continue
			}
			items = append(items, entity.PaymentItem{
				ID:            uuid.New().String(),
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.Number,
				Amount:        amount,
			})
		}
		p.Items = items
	case in.PartyID != nil && len(p.Items) > 0:
		verr.Add("party_id", "Cannot change party while invoices are applied")
	case wasCanceled && p.Status != entity.StatusCanceled:
		// al reactivar, las aplicaciones vuelven a consumir saldo de las facturas
		for i, it := range p.Items {
			if _, err := uc.checkInvoice(ctx, p, fmt.Sprintf("items[%d]", i), it.InvoiceID, it.Amount, released, verr); err != nil {
				return err
			}
		}
	}

	if p.ItemsTotal().GreaterThan(p.Amount) {
		verr.Add("items", "Sum of applied amounts exceeds payment amount")
	}
	return verr.OrNil()
}

// checkInvoice valida una aplicación contra la factura; devuelve nil si la factura no es aplicable.
func (uc *PaymentUseCase) checkInvoice(ctx context.Context, p *entity.Payment, field, invoiceID string, amount decimal.Decimal, released map[string]decimal.Decimal, verr *domain.ValidationError) (*entity.TradeDocument, error) {
	inv, err := uc.invoiceRepo(p).GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	switch {
	case inv == nil || inv.CompanyID != p.CompanyID:
		verr.Add(field+".invoice_id", msgNotFound)
		return nil, nil
	case inv.PartyID != p.PartyID:
		verr.Add(field+".invoice_id", "Invoice belongs to another party")
		return nil, nil
	case inv.Status == entity.StatusCanceled:
		verr.Add(field+".invoice_id", "Invoice is canceled")
		return nil, nil
	}
	if amount.GreaterThan(inv.BalanceDue().Add(released[inv.ID])) {
		verr.Add(field+".amount", "Amount exceeds invoice balance due")
	}
	return inv, nil
}

func (uc *PaymentUseCase) get(ctx context.Context, companyID, id string) (*entity.Payment, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID pago con aplicaciones.
func (uc *PaymentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// List filtra por tipo, contraparte, estado y fechas.
func (uc *PaymentUseCase) List(ctx context.Context, companyID string, q dto.LedgerQuery) (*dto.PaymentListResponse, error) {
	f, err := ledgerFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Items: items, Page: page(q.ListQuery)}, nil
}

// Update cambios parciales; items, si viene, reemplaza las aplicaciones.
func (uc *PaymentUseCase) Update(ctx context.Context, companyID, id string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	var previous []entity.PaymentItem
	if p.Status != entity.StatusCanceled {
		previous = p.Items
	}
	if err := uc.apply(ctx, p, previous, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p, in.Items != nil); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

func (uc *PaymentUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:        p.ID,
		Number:    p.Number,
		Date:      dto.FormatDate(p.Date),
		Type:      p.Type,
		AccountID: p.AccountID,
		PartyID:   p.PartyID,
		PartyName: p.PartyName,
		Amount:    p.Amount,
		Applied:   p.ItemsTotal(),
		Method:    p.Method,
		Reference: p.Reference,
		Status:    p.Status,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PaymentItemResponse{
			ID:            it.ID,
			InvoiceID:     it.InvoiceID,
			InvoiceNumber: it.InvoiceNumber,
			Amount:        it.Amount,
		})
	}
	return resp
}
