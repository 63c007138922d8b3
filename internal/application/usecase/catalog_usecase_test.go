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

func TestProductUseCase_CreaConValoresPorDefecto(t *testing.T) {
	repo := &fakeProductRepo{rows: map[string]*entity.Product{}}
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(context.Background(), companyA, dto.CreateProductRequest{
		Code: "P001", Name: "Teclado", SellPrice: decimal.NewFromInt(120), TaxRate: decimal.NewFromInt(19),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductTypeInventory, out.Type)
	assert.Equal(t, "unit", out.Unit)
	assert.True(t, out.IsActive)
	assert.True(t, out.Cost.IsZero())
}

func TestProductUseCase_UpdateNoTocaCosto(t *testing.T) {
	repo := &fakeProductRepo{rows: map[string]*entity.Product{}}
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()
	created, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "P001", Name: "Teclado"})
	require.NoError(t, err)
	repo.rows[created.ID].Cost = decimal.NewFromInt(35)

	price := decimal.NewFromInt(99)
	out, err := uc.Update(ctx, companyA, created.ID, dto.UpdateProductRequest{SellPrice: &price, IsActive: new(bool)})
	require.NoError(t, err)
	assert.True(t, out.SellPrice.Equal(price))
	assert.False(t, out.IsActive)
	assert.Equal(t, "Teclado", out.Name)
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(35)), out.Cost.String())

	_, err = uc.Update(ctx, companyB, created.ID, dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, companyB, created.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, companyA, created.ID))
	assert.Empty(t, repo.rows)
}

func TestWarehouseUseCase_CRUD(t *testing.T) {
	repo := &fakeWarehouseRepo{rows: map[string]*entity.Warehouse{}}
	uc := usecase.NewWarehouseUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, companyA, dto.CreateWarehouseRequest{Code: "W1", Name: "Principal"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := uc.Update(ctx, companyA, created.ID, dto.UpdateWarehouseRequest{Address: strPtr("Calle 1")})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", updated.Address)
	assert.Equal(t, "Principal", updated.Name)

	list, err := uc.List(ctx, companyB, dto.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	_, err = uc.GetByID(ctx, companyB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, companyA, created.ID))
	_, err = uc.GetByID(ctx, companyA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
