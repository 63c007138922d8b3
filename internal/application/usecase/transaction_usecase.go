package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TransactionUseCase entradas y salidas de caja y banco.
type TransactionUseCase struct {
	repo     repository.TransactionRepository
	accounts repository.AccountRepository
	seq      repository.SequenceRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository, accounts repository.AccountRepository, seq repository.SequenceRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, accounts: accounts, seq: seq}
}

// Create registra la transacción; estado por defecto posted.
func (uc *TransactionUseCase) Create(ctx context.Context, companyID, userID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	verr := &domain.ValidationError{}
	if in.Type == nil {
		verr.Add("type", msgRequired)
	}
	if in.Amount == nil {
		verr.Add("amount", msgRequired)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.Transaction{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Date:      dateOrToday(in.Date),
		Status:    entity.StatusPosted,
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, t, in); err != nil {
		return nil, err
	}
	number, err := nextNumber(ctx, uc.seq, companyID, entity.PrefixTransaction, t.Date)
	if err != nil {
		return nil, err
	}
	t.Number = number
	t.UpdatedAt = now
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) apply(ctx context.Context, t *entity.Transaction, in dto.TransactionRequest) error {
	if in.Date != nil {
		t.Date = dateOrToday(in.Date)
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Amount != nil {
		t.Amount = in.Amount.Round(2)
	}
	if in.Reference != nil {
		t.Reference = *in.Reference
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.AccountID != nil {
		t.AccountID = *in.AccountID
		if t.AccountID != "" {
			a, err := uc.accounts.GetByID(ctx, t.AccountID)
			if err != nil {
				return err
			}
			if a == nil || a.CompanyID != t.CompanyID {
				return domain.NewValidationError("account_id", msgNotFound)
			}
		}
	}
	return nil
}

func (uc *TransactionUseCase) get(ctx context.Context, companyID, id string) (*entity.Transaction, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TransactionResponse, error) {
	t, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// List filtra por tipo, estado y fechas.
func (uc *TransactionUseCase) List(ctx context.Context, companyID string, q dto.LedgerQuery) (*dto.TransactionListResponse, error) {
	f, err := ledgerFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{Items: items, Page: page(q.ListQuery)}, nil
}

func (uc *TransactionUseCase) Update(ctx context.Context, companyID, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	t, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, t, in); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// Delete elimina; los asientos que la referencian quedan sin vínculo.
func (uc *TransactionUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Number:      t.Number,
		Date:        dto.FormatDate(t.Date),
		Type:        t.Type,
		Description: t.Description,
		Amount:      t.Amount,
		Reference:   t.Reference,
		AccountID:   t.AccountID,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
