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

func transactionFixture() (*usecase.TransactionUseCase, *memTransactionRepo) {
	repo := &memTransactionRepo{rows: map[string]*entity.Transaction{}}
	accounts := &fakeAccountRepo{rows: map[string]*entity.Account{
		cashID:    {ID: cashID, CompanyID: companyA, Name: "Caja"},
		foreignID: {ID: foreignID, CompanyID: companyB, Name: "Caja B"},
	}}
	return usecase.NewTransactionUseCase(repo, accounts, newFakeSequence()), repo
}

func TestTransactionUseCase_CreatePorDefectoContabilizada(t *testing.T) {
	uc, _ := transactionFixture()
	amount := decimal.RequireFromString("150.456")

	out, err := uc.Create(context.Background(), companyA, "user-1", dto.TransactionRequest{
		Date:      strPtr("2026-02-01"),
		Type:      strPtr(entity.TransactionCashReceipt),
		Amount:    &amount,
		AccountID: strPtr(cashID),
	})
	require.NoError(t, err)
	assert.Equal(t, "TRX-2026-00001", out.Number)
	assert.Equal(t, entity.StatusPosted, out.Status)
	assert.Equal(t, "2026-02-01", out.Date)
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("150.46")), out.Amount.String())
}

func TestTransactionUseCase_Validaciones(t *testing.T) {
	uc, repo := transactionFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, companyA, "", dto.TransactionRequest{})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "amount")

	amount := decimal.NewFromInt(10)
	_, err = uc.Create(ctx, companyA, "", dto.TransactionRequest{
		Type: strPtr(entity.TransactionBankPayment), Amount: &amount, AccountID: strPtr(foreignID),
	})
	assert.Contains(t, validationFields(t, err), "account_id")
	assert.Empty(t, repo.rows)
}

func TestTransactionUseCase_UpdateParcialYAislamiento(t *testing.T) {
	uc, _ := transactionFixture()
	ctx := context.Background()
	amount := decimal.NewFromInt(10)
	created, err := uc.Create(ctx, companyA, "", dto.TransactionRequest{
		Type: strPtr(entity.TransactionCashPayment), Amount: &amount, Description: strPtr("Papelería"),
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, companyA, created.ID, dto.TransactionRequest{Status: strPtr(entity.StatusCanceled)})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, updated.Status)
	assert.Equal(t, "Papelería", updated.Description)
	assert.Equal(t, created.Number, updated.Number)

	_, err = uc.Update(ctx, companyB, created.ID, dto.TransactionRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, companyB, created.ID), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, companyA, created.ID))
	_, err = uc.GetByID(ctx, companyA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
