package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

const (
	companyID   = "aaaaaaaa-0000-0000-0000-000000000001"
	otherCo     = "bbbbbbbb-0000-0000-0000-000000000002"
	customerID  = "cccccccc-0000-0000-0000-000000000001"
	customer2   = "cccccccc-0000-0000-0000-000000000002"
	productID   = "dddddddd-0000-0000-0000-000000000001"
	foreignProd = "dddddddd-0000-0000-0000-000000000002"
)

type docRepo struct {
	kind entity.DocumentKind
	rows map[string]*entity.TradeDocument
}

func (r *docRepo) Kind() entity.DocumentKind { return r.kind }

func (r *docRepo) Create(_ context.Context, d *entity.TradeDocument) error {
	r.rows[d.ID] = d
	return nil
}

func (r *docRepo) GetByID(_ context.Context, id string) (*entity.TradeDocument, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Items = append([]entity.DocumentItem(nil), d.Items...)
	return &cp, nil
}

func (r *docRepo) List(_ context.Context, company string, _ repository.DocumentFilter) ([]*entity.TradeDocument, error) {
	var out []*entity.TradeDocument
	for _, d := range r.rows {
		if d.CompanyID == company {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *docRepo) Update(_ context.Context, d *entity.TradeDocument, _ bool) error {
	r.rows[d.ID] = d
	return nil
}

func (r *docRepo) Delete(_ context.Context, _, id string) error {
	delete(r.rows, id)
	return nil
}

type partyRepo struct{ rows map[string]*entity.Party }

func (r partyRepo) Create(context.Context, *entity.Party) error { return nil }
func (r partyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	return r.rows[id], nil
}
func (r partyRepo) List(context.Context, string, repository.ListParams) ([]*entity.Party, error) {
	return nil, nil
}
func (r partyRepo) Update(context.Context, *entity.Party) error { return nil }
func (r partyRepo) Delete(context.Context, string, string) error { return nil }

type productRepo struct{ rows map[string]*entity.Product }

func (r productRepo) Create(context.Context, *entity.Product) error { return nil }
func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.rows[id], nil
}
func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}
func (r productRepo) List(context.Context, string, repository.ListParams) ([]*entity.Product, error) {
	return nil, nil
}
func (r productRepo) Update(context.Context, *entity.Product) error { return nil }
func (r productRepo) UpdateCost(context.Context, string, decimal.Decimal) error {
	return nil
}
func (r productRepo) Delete(context.Context, string, string) error { return nil }

type seq struct{ n int64 }

func (s *seq) Next(context.Context, string, string, int) (int64, error) {
	s.n++
	return s.n, nil
}

// paymentUsage facturas con pagos aplicados.
type paymentUsage struct{ invoices map[string]bool }

func (u paymentUsage) InvoiceHasPayments(_ context.Context, id string) (bool, error) {
	return u.invoices[id], nil
}

func (u paymentUsage) PartyHasPayments(context.Context, string, string) (bool, error) {
	return false, nil
}

func invoiceUseCase() (*billing.DocumentUseCase, *docRepo) {
	return invoiceUseCaseWithPayments(paymentUsage{})
}

func invoiceUseCaseWithPayments(payments paymentUsage) (*billing.DocumentUseCase, *docRepo) {
	repo := &docRepo{kind: entity.KindSalesInvoice, rows: map[string]*entity.TradeDocument{}}
	orders := &docRepo{kind: entity.KindSalesOrder, rows: map[string]*entity.TradeDocument{}}
	uc := billing.NewDocumentUseCase(billing.DocumentDeps{
		Documents: repo,
		Sources:   orders,
		Parties: partyRepo{rows: map[string]*entity.Party{
			customerID: {ID: customerID, CompanyID: companyID, Name: "Acme"},
			customer2:  {ID: customer2, CompanyID: companyID, Name: "Beta"},
		}},
		Products: productRepo{rows: map[string]*entity.Product{
			productID:   {ID: productID, CompanyID: companyID, Name: "Teclado", TaxRate: decimal.NewFromInt(19)},
			foreignProd: {ID: foreignProd, CompanyID: otherCo, Name: "Ajeno"},
		}},
		Sequences: &seq{},
		Payments:  payments,
	})
	return uc, repo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *string { return &s }

func TestDocumentUseCase_CreateCalculaTotales(t *testing.T) {
	uc, _ := invoiceUseCase()
	zero := decimal.Zero

	out, err := uc.Create(context.Background(), companyID, "user-1", dto.DocumentRequest{
		CustomerID: ptr(customerID),
		Date:       ptr("2026-05-02"),
		DueDate:    ptr("2026-06-01"),
		Items: []dto.DocumentItemRequest{
			{ProductID: productID, Quantity: dec("2"), UnitPrice: dec("100")},
			{Description: "Instalación", Quantity: dec("1"), UnitPrice: dec("50"), TaxRate: &zero},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-00001", out.Number)
	assert.Equal(t, entity.StatusUnpaid, out.Status)
	assert.Equal(t, customerID, out.CustomerID)
	assert.True(t, out.Subtotal.Equal(dec("250")), out.Subtotal.String())
	assert.True(t, out.TaxTotal.Equal(dec("38")), out.TaxTotal.String())
	assert.True(t, out.Total.Equal(dec("288")), out.Total.String())
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Teclado", out.Items[0].Description)
	require.NotNil(t, out.BalanceDue)
	assert.True(t, out.BalanceDue.Equal(dec("288")))
}

func TestDocumentUseCase_ReferenciasInvalidas(t *testing.T) {
	uc, _ := invoiceUseCase()

	_, err := uc.Create(context.Background(), companyID, "user-1", dto.DocumentRequest{
		CustomerID: ptr("cccccccc-0000-0000-0000-000000000099"),
		OrderID:    ptr("eeeeeeee-0000-0000-0000-000000000001"),
		Items: []dto.DocumentItemRequest{
			{ProductID: foreignProd, Quantity: dec("1"), UnitPrice: dec("10")},
			{Quantity: dec("1"), UnitPrice: dec("10")},
		},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Referenced record not found", verr.Fields["customer_id"])
	assert.Contains(t, verr.Fields, "order_id")
	assert.Contains(t, verr.Fields, "items[0].product_id")
	assert.Contains(t, verr.Fields, "items[1].description")
}

func TestDocumentUseCase_CreateRequiereClienteEItems(t *testing.T) {
	uc, _ := invoiceUseCase()

	_, err := uc.Create(context.Background(), companyID, "user-1", dto.DocumentRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_id")
	assert.Contains(t, verr.Fields, "items")
}

func TestDocumentUseCase_EstadoInvalido(t *testing.T) {
	uc, _ := invoiceUseCase()

	_, err := uc.Create(context.Background(), companyID, "user-1", dto.DocumentRequest{
		CustomerID: ptr(customerID),
		Status:     ptr(entity.StatusApproved),
		Items:      []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestDocumentUseCase_UpdateRecalculaYAislaEmpresa(t *testing.T) {
	uc, _ := invoiceUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, companyID, "user-1", dto.DocumentRequest{
		CustomerID: ptr(customerID),
		Items:      []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("100")}},
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, companyID, created.ID, dto.DocumentRequest{Note: ptr("gracias")})
	require.NoError(t, err)
	assert.Equal(t, "gracias", updated.Note)
	assert.True(t, updated.Total.Equal(dec("119")))

	updated, err = uc.Update(ctx, companyID, created.ID, dto.DocumentRequest{
		Items: []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("3"), UnitPrice: dec("100")}},
	})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(dec("357")), updated.Total.String())

	_, err = uc.GetByID(ctx, otherCo, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, otherCo, created.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, companyID, created.ID))
	_, err = uc.GetByID(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUseCase_DeleteConPagosAplicados(t *testing.T) {
	payments := paymentUsage{invoices: map[string]bool{}}
	uc, _ := invoiceUseCaseWithPayments(payments)
	ctx := context.Background()
	items := []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("100")}}

	paid, err := uc.Create(ctx, companyID, "", dto.DocumentRequest{CustomerID: ptr(customerID), Items: items})
	require.NoError(t, err)
	free, err := uc.Create(ctx, companyID, "", dto.DocumentRequest{CustomerID: ptr(customerID), Items: items})
	require.NoError(t, err)
	payments.invoices[paid.ID] = true

	assert.ErrorIs(t, uc.Delete(ctx, companyID, paid.ID), domain.ErrConflict)
	_, err = uc.GetByID(ctx, companyID, paid.ID)
	assert.NoError(t, err)

	assert.NoError(t, uc.Delete(ctx, companyID, free.ID))
}

func TestDocumentUseCase_UpdateNoDesconoceLoPagado(t *testing.T) {
	uc, repo := invoiceUseCase()
	ctx := context.Background()

	inv, err := uc.Create(ctx, companyID, "", dto.DocumentRequest{
		CustomerID: ptr(customerID),
		Items:      []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("100")}},
	})
	require.NoError(t, err)
	repo.rows[inv.ID].AmountPaid = dec("100")

	_, err = uc.Update(ctx, companyID, inv.ID, dto.DocumentRequest{
		Items: []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("50")}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")

	_, err = uc.Update(ctx, companyID, inv.ID, dto.DocumentRequest{CustomerID: ptr(customer2)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_id")

	// subir el total sigue permitido
	out, err := uc.Update(ctx, companyID, inv.ID, dto.DocumentRequest{
		Items: []dto.DocumentItemRequest{{ProductID: productID, Quantity: dec("2"), UnitPrice: dec("100")}},
	})
	require.NoError(t, err)
	assert.True(t, out.BalanceDue.Equal(dec("138")), out.BalanceDue.String())
}
