package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

const (
	custA = "cccccccc-0000-0000-0000-00000000000a"
	custB = "cccccccc-0000-0000-0000-00000000000b"
	invA  = "99999999-0000-0000-0000-00000000000a"
	invB  = "99999999-0000-0000-0000-00000000000b"
)

type paymentFixture struct {
	uc       *usecase.PaymentUseCase
	payments *fakePaymentRepo
}

// factura invA (custA, total 100) e invB (custB, total 50)
func newPaymentFixture() paymentFixture {
	payments := &fakePaymentRepo{rows: map[string]*entity.Payment{}}
	customers := newFakePartyRepo()
	customers.rows[custA] = &entity.Party{ID: custA, CompanyID: companyA, Code: "C-A", Name: "Acme"}
	customers.rows[custB] = &entity.Party{ID: custB, CompanyID: companyA, Code: "C-B", Name: "Beta"}
	sales := &fakeInvoiceRepo{kind: entity.KindSalesInvoice, payments: payments, rows: map[string]*entity.TradeDocument{
		invA: {ID: invA, CompanyID: companyA, Kind: entity.KindSalesInvoice, Number: "INV-2026-00001", PartyID: custA, Status: entity.StatusUnpaid, Total: decimal.NewFromInt(100)},
		invB: {ID: invB, CompanyID: companyA, Kind: entity.KindSalesInvoice, Number: "INV-2026-00002", PartyID: custB, Status: entity.StatusUnpaid, Total: decimal.NewFromInt(50)},
	}}
	uc := usecase.NewPaymentUseCase(usecase.PaymentDeps{
		Payments: payments,
		Accounts: &fakeAccountRepo{rows: map[string]*entity.Account{
			cashID:    {ID: cashID, CompanyID: companyA, Name: "Caja"},
			foreignID: {ID: foreignID, CompanyID: companyB, Name: "Caja B"},
		}},
		Customers:        customers,
		Vendors:          newFakePartyRepo(),
		SalesInvoices:    sales,
		PurchaseInvoices: &fakeInvoiceRepo{kind: entity.KindPurchaseInvoice, payments: payments, rows: map[string]*entity.TradeDocument{}},
		Sequences:        newFakeSequence(),
	})
	return paymentFixture{uc: uc, payments: payments}
}

func recaudo(party string, amount int64, items ...dto.PaymentItemRequest) dto.PaymentRequest {
	typ, acc, amt := entity.PaymentTypeCustomer, cashID, decimal.NewFromInt(amount)
	return dto.PaymentRequest{Type: &typ, AccountID: &acc, PartyID: &party, Amount: &amt, Date: strPtr("2026-03-10"), Items: items}
}

func aplica(invoice string, amount int64) dto.PaymentItemRequest {
	return dto.PaymentItemRequest{InvoiceID: invoice, Amount: decimal.NewFromInt(amount)}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestPaymentUseCase_CreateAplicaAFacturas(t *testing.T) {
	f := newPaymentFixture()

	out, err := f.uc.Create(context.Background(), companyA, "user-1", recaudo(custA, 80, aplica(invA, 60)))
	require.NoError(t, err)
	assert.Equal(t, "PAY-2026-00001", out.Number)
	assert.Equal(t, entity.StatusPosted, out.Status)
	assert.True(t, out.Applied.Equal(decimal.NewFromInt(60)), out.Applied.String())
	require.Len(t, out.Items, 1)
	assert.Equal(t, "INV-2026-00001", out.Items[0].InvoiceNumber)
}

func TestPaymentUseCase_Validaciones(t *testing.T) {
	cases := []struct {
		name  string
		in    dto.PaymentRequest
		field string
	}{
		{"suma aplicada mayor al monto", recaudo(custA, 50, aplica(invA, 60)), "items"},
		{"factura de otra contraparte", recaudo(custA, 50, aplica(invB, 10)), "items[0].invoice_id"},
		{"monto mayor al saldo", recaudo(custB, 80, aplica(invB, 60)), "items[0].amount"},
		{"factura inexistente", recaudo(custA, 50, aplica("99999999-0000-0000-0000-000000000099", 10)), "items[0].invoice_id"},
		{"factura repetida", recaudo(custA, 50, aplica(invA, 10), aplica(invA, 10)), "items[1].invoice_id"},
		{"contraparte de otra empresa", recaudo("cccccccc-0000-0000-0000-000000000099", 50), "party_id"},
		{"sin monto", dto.PaymentRequest{Type: strPtr(entity.PaymentTypeCustomer), AccountID: strPtr(cashID), PartyID: strPtr(custA)}, "amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture()
			_, err := f.uc.Create(context.Background(), companyA, "", tc.in)
			assert.Contains(t, validationFields(t, err), tc.field)
			assert.Empty(t, f.payments.rows)
		})
	}
}

func TestPaymentUseCase_CuentaDeOtraEmpresa(t *testing.T) {
	f := newPaymentFixture()
	in := recaudo(custA, 10)
	in.AccountID = strPtr(foreignID)

	_, err := f.uc.Create(context.Background(), companyA, "", in)
	assert.Contains(t, validationFields(t, err), "account_id")
}

func TestPaymentUseCase_TipoNoCambia(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 10))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, companyA, out.ID, dto.PaymentRequest{Type: strPtr(entity.PaymentTypeVendor)})
	assert.Contains(t, validationFields(t, err), "type")
}

func TestPaymentUseCase_UpdateLiberaSusPropiasAplicaciones(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 60, aplica(invA, 60)))
	require.NoError(t, err)

	// saldo visible 40 + 60 ya aplicados por este mismo pago
	amount := decimal.NewFromInt(100)
	updated, err := f.uc.Update(ctx, companyA, out.ID, dto.PaymentRequest{
		Amount: &amount,
		Items:  []dto.PaymentItemRequest{aplica(invA, 100)},
	})
	require.NoError(t, err)
	assert.True(t, updated.Applied.Equal(amount))
}

func TestPaymentUseCase_ReactivarAnuladoRevalidaSaldo(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	first, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 100, aplica(invA, 100)))
	require.NoError(t, err)
	_, err = f.uc.Update(ctx, companyA, first.ID, dto.PaymentRequest{Status: strPtr(entity.StatusCanceled)})
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 100, aplica(invA, 100)))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, companyA, first.ID, dto.PaymentRequest{Status: strPtr(entity.StatusPosted)})
	assert.Contains(t, validationFields(t, err), "items[0].amount")
	assert.Equal(t, entity.StatusCanceled, f.payments.rows[first.ID].Status)
	assert.True(t, f.payments.paidFor(invA).Equal(decimal.NewFromInt(100)))

	// liberado el saldo, la reactivación procede
	_, err = f.uc.Update(ctx, companyA, second.ID, dto.PaymentRequest{Status: strPtr(entity.StatusCanceled)})
	require.NoError(t, err)
	reactivated, err := f.uc.Update(ctx, companyA, first.ID, dto.PaymentRequest{Status: strPtr(entity.StatusPosted)})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPosted, reactivated.Status)
}

func TestPaymentUseCase_OtraEmpresaEsNotFound(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 10))
	require.NoError(t, err)

	_, err = f.uc.GetByID(ctx, companyB, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, companyB, out.ID), domain.ErrNotFound)
	assert.NoError(t, f.uc.Delete(ctx, companyA, out.ID))
}

func TestPartyUseCase_DeleteConPagosEsConflicto(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	_, err := f.uc.Create(ctx, companyA, "", recaudo(custA, 10))
	require.NoError(t, err)

	parties := newFakePartyRepo()
	parties.rows[custA] = &entity.Party{ID: custA, CompanyID: companyA, Code: "C-A"}
	parties.rows[custB] = &entity.Party{ID: custB, CompanyID: companyA, Code: "C-B"}
	uc := usecase.NewPartyUseCase(parties, f.payments, entity.PaymentTypeCustomer)

	assert.ErrorIs(t, uc.Delete(ctx, companyA, custA), domain.ErrConflict)
	assert.Contains(t, parties.rows, custA)
	assert.NoError(t, uc.Delete(ctx, companyA, custB))

	// el mismo id como proveedor no está referenciado
	vendors := usecase.NewPartyUseCase(parties, f.payments, entity.PaymentTypeVendor)
	assert.NoError(t, vendors.Delete(ctx, companyA, custA))
}
