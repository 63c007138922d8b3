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

// PartyUseCase CRUD de clientes o proveedores (una instancia por tabla).
type PartyUseCase struct {
	repo        repository.PartyRepository
	payments    repository.PaymentUsage
	paymentType string
}

// NewPartyUseCase construye el caso de uso. paymentType (customer o vendor) indica qué pagos
// referencian a estas contrapartes; payments puede ser nil.
func NewPartyUseCase(repo repository.PartyRepository, payments repository.PaymentUsage, paymentType string) *PartyUseCase {
	return &PartyUseCase{repo: repo, payments: payments, paymentType: paymentType}
}

// Create alta; código duplicado -> ErrDuplicate desde el repositorio.
func (uc *PartyUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	now := time.Now()
	p := &entity.Party{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Code:          in.Code,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		TaxID:         in.TaxID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartyResponse(p), nil
}

func (uc *PartyUseCase) get(ctx context.Context, companyID, id string) (*entity.Party, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID obtiene por ID dentro de la empresa.
func (uc *PartyUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(p), nil
}

// List lista paginada con búsqueda por nombre, código, email o NIT.
func (uc *PartyUseCase) List(ctx context.Context, companyID string, q dto.ListQuery) (*dto.PartyListResponse, error) {
	list, err := uc.repo.List(ctx, companyID, listParams(q))
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartyResponse(p))
	}
	return &dto.PartyListResponse{Items: items, Page: page(q)}, nil
}

// Update solo modifica los campos presentes.
func (uc *PartyUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.ContactPerson != nil {
		p.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.TaxID != nil {
		p.TaxID = *in.TaxID
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartyResponse(p), nil
}

// Delete elimina; con pagos o documentos asociados devuelve ErrConflict.
func (uc *PartyUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	if uc.payments != nil {
		used, err := uc.payments.PartyHasPayments(ctx, uc.paymentType, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrConflict
		}
	}
	return uc.repo.Delete(ctx, companyID, id)
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		Code:          p.Code,
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		TaxID:         p.TaxID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
