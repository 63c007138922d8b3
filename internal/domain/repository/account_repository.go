package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// AccountFilter filtros del listado de cuentas.
type AccountFilter struct {
	ListParams
	CategoryID string
	Type       string
	Active     *bool
}

// AccountCategoryRepository puerto de categorías del plan de cuentas.
type AccountCategoryRepository interface {
	Create(ctx context.Context, c *entity.AccountCategory) error
	GetByID(ctx context.Context, id string) (*entity.AccountCategory, error)
	List(ctx context.Context, companyID string, p ListParams) ([]*entity.AccountCategory, error)
	Update(ctx context.Context, c *entity.AccountCategory) error
	Delete(ctx context.Context, companyID, id string) error
}

// AccountRepository puerto de cuentas contables.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	List(ctx context.Context, companyID string, f AccountFilter) ([]*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
	Delete(ctx context.Context, companyID, id string) error
}
