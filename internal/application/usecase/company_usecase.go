package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// defaultCategories una categoría por tipo contable, sembradas al crear la empresa.
var defaultCategories = []entity.AccountCategory{
	{Code: "1", Name: "Activos", Type: entity.AccountTypeAsset},
	{Code: "2", Name: "Pasivos", Type: entity.AccountTypeLiability},
	{Code: "3", Name: "Patrimonio", Type: entity.AccountTypeEquity},
	{Code: "4", Name: "Ingresos", Type: entity.AccountTypeRevenue},
	{Code: "5", Name: "Gastos", Type: entity.AccountTypeExpense},
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo         repository.CompanyRepository
	categoryRepo repository.AccountCategoryRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, categoryRepo repository.AccountCategoryRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea una nueva empresa activa y siembra las categorías contables por defecto.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	now := time.Now()
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "USD"
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Currency:  currency,
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	for _, def := range defaultCategories {
		c := def
		c.ID = uuid.New().String()
		c.CompanyID = company.ID
		c.CreatedAt, c.UpdatedAt = now, now
		if err := uc.categoryRepo.Create(ctx, &c); err != nil {
			return nil, err
		}
	}
	return entityToCompanyResponse(company), nil
}

// Get obtiene la empresa del usuario autenticado.
func (uc *CompanyUseCase) Get(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Update cambios parciales de la empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.TaxID != nil {
		company.TaxID = *in.TaxID
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Currency != nil {
		company.Currency = strings.ToUpper(*in.Currency)
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Currency:  c.Currency,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
