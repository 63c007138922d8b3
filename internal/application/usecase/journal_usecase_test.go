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
	cashID    = "11111111-0000-0000-0000-000000000001"
	revenueID = "11111111-0000-0000-0000-000000000004"
	foreignID = "22222222-0000-0000-0000-000000000001"
)

func journalFixture() (*usecase.JournalUseCase, *fakeJournalRepo) {
	accounts := &fakeAccountRepo{rows: map[string]*entity.Account{
		cashID:    {ID: cashID, CompanyID: companyA, Code: "1105", Name: "Caja", Type: entity.AccountTypeAsset},
		revenueID: {ID: revenueID, CompanyID: companyA, Code: "4135", Name: "Ventas", Type: entity.AccountTypeRevenue},
		foreignID: {ID: foreignID, CompanyID: companyB, Code: "1105", Name: "Caja B", Type: entity.AccountTypeAsset},
	}}
	journals := &fakeJournalRepo{rows: map[string]*entity.Journal{}}
	return usecase.NewJournalUseCase(journals, accounts, fakeTransactionRepo{}, newFakeSequence()), journals
}

func line(account string, debit, credit int64) dto.JournalItemRequest {
	return dto.JournalItemRequest{AccountID: account, Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

func TestJournalUseCase_BorradorPuedeDescuadrar(t *testing.T) {
	uc, _ := journalFixture()

	out, err := uc.Create(context.Background(), companyA, "user-1", dto.JournalRequest{
		Date:  strPtr("2026-03-10"),
		Items: []dto.JournalItemRequest{line(cashID, 100, 0), line(revenueID, 0, 90)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.False(t, out.IsBalanced)
	assert.Equal(t, "JV-2026-00001", out.Number)
	assert.Len(t, out.Items, 2)
}

func TestJournalUseCase_ContabilizadoDebeCuadrar(t *testing.T) {
	uc, _ := journalFixture()

	_, err := uc.Create(context.Background(), companyA, "user-1", dto.JournalRequest{
		Status: strPtr(entity.StatusPosted),
		Items:  []dto.JournalItemRequest{line(cashID, 100, 0), line(revenueID, 0, 90)},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")

	out, err := uc.Create(context.Background(), companyA, "user-1", dto.JournalRequest{
		Status: strPtr(entity.StatusPosted),
		Items:  []dto.JournalItemRequest{line(cashID, 100, 0), line(revenueID, 0, 100)},
	})
	require.NoError(t, err)
	assert.True(t, out.IsBalanced)
	assert.True(t, out.TotalDebit.Equal(decimal.NewFromInt(100)))
}

func TestJournalUseCase_ValidaLineas(t *testing.T) {
	uc, _ := journalFixture()

	_, err := uc.Create(context.Background(), companyA, "user-1", dto.JournalRequest{
		Items: []dto.JournalItemRequest{line(cashID, 0, 0), line(foreignID, 10, 0)},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].debit")
	assert.Contains(t, verr.Fields, "items[1].account_id")

	_, err = uc.Create(context.Background(), companyA, "user-1", dto.JournalRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJournalUseCase_UpdateReemplazaLineasSoloSiVienen(t *testing.T) {
	uc, repo := journalFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, companyA, "user-1", dto.JournalRequest{
		Items: []dto.JournalItemRequest{line(cashID, 50, 0), line(revenueID, 0, 50)},
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, companyA, created.ID, dto.JournalRequest{Description: strPtr("Venta de contado")})
	require.NoError(t, err)
	assert.False(t, repo.replaced)
	assert.Equal(t, "Venta de contado", out.Description)
	assert.Len(t, out.Items, 2)

	out, err = uc.Update(ctx, companyA, created.ID, dto.JournalRequest{
		Items: []dto.JournalItemRequest{line(cashID, 70, 0), line(revenueID, 0, 70)},
	})
	require.NoError(t, err)
	assert.True(t, repo.replaced)
	assert.True(t, out.TotalCredit.Equal(decimal.NewFromInt(70)))

	_, err = uc.GetByID(ctx, companyB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
