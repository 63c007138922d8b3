package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios. El email es único global.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, p ListParams) ([]*entity.User, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, companyID, id string) error
}
