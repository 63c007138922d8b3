package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

const (
	companyA = "aaaaaaaa-0000-0000-0000-000000000001"
	companyB = "bbbbbbbb-0000-0000-0000-000000000002"
)

func strPtr(s string) *string { return &s }

func TestPartyUseCase_CreateYGet(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPartyUseCase(newFakePartyRepo(), nil, entity.PaymentTypeCustomer)

	created, err := uc.Create(ctx, companyA, dto.CreatePartyRequest{Code: "C001", Name: "Acme", Email: "ventas@acme.test"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := uc.GetByID(ctx, companyA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "ventas@acme.test", got.Email)
}

func TestPartyUseCase_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPartyUseCase(newFakePartyRepo(), nil, entity.PaymentTypeCustomer)

	_, err := uc.Create(ctx, companyA, dto.CreatePartyRequest{Code: "C001", Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyA, dto.CreatePartyRequest{Code: "C001", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el mismo código en otra empresa es válido
	_, err = uc.Create(ctx, companyB, dto.CreatePartyRequest{Code: "C001", Name: "Otra"})
	assert.NoError(t, err)
}

func TestPartyUseCase_OtraEmpresaEsNotFound(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPartyUseCase(newFakePartyRepo(), nil, entity.PaymentTypeCustomer)

	created, err := uc.Create(ctx, companyA, dto.CreatePartyRequest{Code: "C001", Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, companyB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, companyB, created.ID, dto.UpdatePartyRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, companyB, created.ID), domain.ErrNotFound)
}

func TestPartyUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPartyUseCase(newFakePartyRepo(), nil, entity.PaymentTypeCustomer)

	created, err := uc.Create(ctx, companyA, dto.CreatePartyRequest{Code: "C001", Name: "Acme", Phone: "555-0100"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, companyA, created.ID, dto.UpdatePartyRequest{Name: strPtr("Acme SAS")})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", updated.Name)
	assert.Equal(t, "C001", updated.Code)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestPartyUseCase_DeleteInexistente(t *testing.T) {
	uc := usecase.NewPartyUseCase(newFakePartyRepo(), nil, entity.PaymentTypeCustomer)
	err := uc.Delete(context.Background(), companyA, "00000000-0000-0000-0000-000000000099")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_CreaCategoriasPorDefecto(t *testing.T) {
	categories := &fakeCategoryRepo{}
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{rows: map[string]*entity.Company{}}, categories)

	out, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Mi Empresa"})
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Currency)

	require.Len(t, categories.rows, 5)
	types := map[string]bool{}
	for _, c := range categories.rows {
		assert.Equal(t, out.ID, c.CompanyID)
		types[c.Type] = true
	}
	for _, typ := range entity.AccountTypes {
		assert.True(t, types[typ], "falta categoría %s", typ)
	}
}
