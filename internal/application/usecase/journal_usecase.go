package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// JournalUseCase asientos manuales. Un borrador puede estar descuadrado; uno posted no.
type JournalUseCase struct {
	repo         repository.JournalRepository
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	seq          repository.SequenceRepository
}

// NewJournalUseCase construye el caso de uso.
func NewJournalUseCase(
	repo repository.JournalRepository,
	accounts repository.AccountRepository,
	transactions repository.TransactionRepository,
	seq repository.SequenceRepository,
) *JournalUseCase {
	return &JournalUseCase{repo: repo, accounts: accounts, transactions: transactions, seq: seq}
}

// Create registra un asiento con al menos una línea.
func (uc *JournalUseCase) Create(ctx context.Context, companyID, userID string, in dto.JournalRequest) (*dto.JournalResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "At least one item is required")
	}
	now := time.Now()
	j := &entity.Journal{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Date:      dateOrToday(in.Date),
		Status:    entity.StatusDraft,
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, j, in); err != nil {
		return nil, err
	}
	number, err := nextNumber(ctx, uc.seq, companyID, entity.PrefixJournal, j.Date)
	if err != nil {
		return nil, err
	}
	j.Number = number
	j.UpdatedAt = now
	if err := uc.repo.Create(ctx, j); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, j.ID)
}

// apply copia los campos presentes, valida referencias y la regla de cuadre.
func (uc *JournalUseCase) apply(ctx context.Context, j *entity.Journal, in dto.JournalRequest) error {
	if in.Date != nil {
		j.Date = dateOrToday(in.Date)
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Reference != nil {
		j.Reference = *in.Reference
	}
	if in.Status != nil {
		j.Status = *in.Status
	}
	verr := &domain.ValidationError{}
	if in.TransactionID != nil {
		j.TransactionID = *in.TransactionID
		if j.TransactionID != "" {
			t, err := uc.transactions.GetByID(ctx, j.TransactionID)
			if err != nil {
				return err
			}
			if t == nil || t.CompanyID != j.CompanyID {
				verr.Add("transaction_id", msgNotFound)
			}
		}
	}
	if in.Items != nil {
		items := make([]entity.JournalItem, 0, len(in.Items))
		for i, it := range in.Items {
			field := fmt.Sprintf("items[%d]", i)
			if it.Debit.IsZero() && it.Credit.IsZero() {
				verr.Add(field+".debit", "Debit or credit must be greater than zero")
			}
			a, err := uc.accounts.GetByID(ctx, it.AccountID)
			if err != nil {
				return err
			}
			if a == nil || a.CompanyID != j.CompanyID {
				verr.Add(field+".account_id", msgNotFound)
			}
			items = append(items, entity.JournalItem{
				ID:          uuid.New().String(),
				AccountID:   it.AccountID,
				Description: it.Description,
				Debit:       it.Debit.Round(2),
				Credit:      it.Credit.Round(2),
				Position:    i + 1,
			})
		}
		j.Items = items
	}
	if j.Status == entity.StatusPosted && !j.IsBalanced() {
		d, c := j.Totals()
		verr.Add("items", fmt.Sprintf("Posted journal must balance (debit %s, credit %s)", d.StringFixed(2), c.StringFixed(2)))
	}
	return verr.OrNil()
}

func (uc *JournalUseCase) get(ctx context.Context, companyID, id string) (*entity.Journal, error) {
	j, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil || j.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return j, nil
}

// GetByID asiento con líneas.
func (uc *JournalUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.JournalResponse, error) {
	j, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toJournalResponse(j), nil
}

// List cabeceras filtradas por estado y fecha.
func (uc *JournalUseCase) List(ctx context.Context, companyID string, q dto.LedgerQuery) (*dto.JournalListResponse, error) {
	f, err := ledgerFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JournalResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *toJournalResponse(j))
	}
	return &dto.JournalListResponse{Items: items, Page: page(q.ListQuery)}, nil
}

// Update cambios parciales; items, si viene, reemplaza las líneas.
func (uc *JournalUseCase) Update(ctx context.Context, companyID, id string, in dto.JournalRequest) (*dto.JournalResponse, error) {
	j, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Items != nil && len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "At least one item is required")
	}
	if err := uc.apply(ctx, j, in); err != nil {
		return nil, err
	}
	j.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, j, in.Items != nil); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

func (uc *JournalUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func toJournalResponse(j *entity.Journal) *dto.JournalResponse {
	debit, credit := j.Totals()
	resp := &dto.JournalResponse{
		ID:            j.ID,
		Number:        j.Number,
		Date:          dto.FormatDate(j.Date),
		Description:   j.Description,
		Reference:     j.Reference,
		Status:        j.Status,
		TransactionID: j.TransactionID,
		TotalDebit:    debit,
		TotalCredit:   credit,
		IsBalanced:    debit.Equal(credit),
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
	for _, it := range j.Items {
		resp.Items = append(resp.Items, dto.JournalItemResponse{
			ID:          it.ID,
			AccountID:   it.AccountID,
			AccountCode: it.AccountCode,
			AccountName: it.AccountName,
			Description: it.Description,
			Debit:       it.Debit,
			Credit:      it.Credit,
		})
	}
	return resp
}
