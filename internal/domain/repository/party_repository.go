package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PartyRepository puerto de clientes o proveedores (misma forma, tablas distintas).
type PartyRepository interface {
	Create(ctx context.Context, p *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	List(ctx context.Context, companyID string, p ListParams) ([]*entity.Party, error)
	Update(ctx context.Context, p *entity.Party) error
	Delete(ctx context.Context, companyID, id string) error
}
