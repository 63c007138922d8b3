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

// AccountUseCase plan de cuentas: categorías y cuentas.
type AccountUseCase struct {
	categories repository.AccountCategoryRepository
	accounts   repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(categories repository.AccountCategoryRepository, accounts repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{categories: categories, accounts: accounts}
}

// CreateCategory alta de categoría.
func (uc *AccountUseCase) CreateCategory(ctx context.Context, companyID string, in dto.CreateAccountCategoryRequest) (*dto.AccountCategoryResponse, error) {
	now := time.Now()
	c := &entity.AccountCategory{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        in.Code,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *AccountUseCase) category(ctx context.Context, companyID, id string) (*entity.AccountCategory, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *AccountUseCase) GetCategory(ctx context.Context, companyID, id string) (*dto.AccountCategoryResponse, error) {
	c, err := uc.category(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *AccountUseCase) ListCategories(ctx context.Context, companyID string, q dto.ListQuery) (*dto.AccountCategoryListResponse, error) {
	list, err := uc.categories.List(ctx, companyID, listParams(q))
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountCategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.AccountCategoryListResponse{Items: items, Page: page(q)}, nil
}

func (uc *AccountUseCase) UpdateCategory(ctx context.Context, companyID, id string, in dto.UpdateAccountCategoryRequest) (*dto.AccountCategoryResponse, error) {
	c, err := uc.category(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		c.Code = *in.Code
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// DeleteCategory con cuentas asociadas -> ErrConflict.
func (uc *AccountUseCase) DeleteCategory(ctx context.Context, companyID, id string) error {
	if _, err := uc.category(ctx, companyID, id); err != nil {
		return err
	}
	return uc.categories.Delete(ctx, companyID, id)
}

// CreateAccount alta de cuenta; la categoría debe ser de la empresa (422 si no).
func (uc *AccountUseCase) CreateAccount(ctx context.Context, companyID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	cat, err := uc.ownCategory(ctx, companyID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	a := &entity.Account{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CategoryID:   cat.ID,
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		IsActive:     active,
		Balance:      in.Balance,
		CategoryName: cat.Name,
		Type:         cat.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

// ownCategory valida una referencia a categoría como error de campo.
func (uc *AccountUseCase) ownCategory(ctx context.Context, companyID, id string) (*entity.AccountCategory, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.CompanyID != companyID {
		return nil, domain.NewValidationError("category_id", msgNotFound)
	}
	return c, nil
}

func (uc *AccountUseCase) account(ctx context.Context, companyID, id string) (*entity.Account, error) {
	a, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (uc *AccountUseCase) GetAccount(ctx context.Context, companyID, id string) (*dto.AccountResponse, error) {
	a, err := uc.account(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

// ListAccounts filtra por categoría, tipo y activo.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, companyID string, q dto.AccountQuery) (*dto.AccountListResponse, error) {
	list, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{
		ListParams: listParams(q.ListQuery),
		CategoryID: q.CategoryID,
		Type:       q.Type,
		Active:     q.Active,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.AccountListResponse{Items: items, Page: page(q.ListQuery)}, nil
}

func (uc *AccountUseCase) UpdateAccount(ctx context.Context, companyID, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	a, err := uc.account(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != a.CategoryID {
		cat, err := uc.ownCategory(ctx, companyID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		a.CategoryID, a.CategoryName, a.Type = cat.ID, cat.Name, cat.Type
	}
	if in.Code != nil {
		a.Code = *in.Code
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	if in.Balance != nil {
		a.Balance = *in.Balance
	}
	a.UpdatedAt = time.Now()
	if err := uc.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

// DeleteAccount con líneas de asiento o pagos asociados -> ErrConflict.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, companyID, id string) error {
	if _, err := uc.account(ctx, companyID, id); err != nil {
		return err
	}
	return uc.accounts.Delete(ctx, companyID, id)
}

func toCategoryResponse(c *entity.AccountCategory) *dto.AccountCategoryResponse {
	return &dto.AccountCategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:           a.ID,
		CategoryID:   a.CategoryID,
		CategoryName: a.CategoryName,
		Type:         a.Type,
		Code:         a.Code,
		Name:         a.Name,
		Description:  a.Description,
		IsActive:     a.IsActive,
		Balance:      a.Balance,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
