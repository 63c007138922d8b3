package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo clientes o proveedores; table es "customers" o "vendors" (constante, nunca input).
type PartyRepo struct {
	q     Querier
	table string
}

// NewCustomerRepository repositorio de clientes.
func NewCustomerRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q, table: "customers"}
}

// NewVendorRepository repositorio de proveedores.
func NewVendorRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q, table: "vendors"}
}

const partyColumns = `id, company_id, code, name, contact_person, email, phone, address, tax_id, created_at, updated_at`

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.ContactPerson, &p.Email, &p.Phone, &p.Address, &p.TaxID,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create persiste la contraparte; código duplicado -> ErrDuplicate.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `INSERT INTO ` + r.table + ` (` + partyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Code, p.Name, p.ContactPerson, p.Email, p.Phone, p.Address, p.TaxID,
		p.CreatedAt, p.UpdatedAt)
	return writeErr("insert "+r.table, err)
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM `+r.table+` WHERE id = $1`, id))
	return notFoundNil(p, err, "get "+r.table)
}

func (r *PartyRepo) List(ctx context.Context, companyID string, lp repository.ListParams) ([]*entity.Party, error) {
	w := newWhere("company_id", companyID)
	w.addSearch(lp.Search, "code", "name", "email", "tax_id")
	query := `SELECT ` + partyColumns + ` FROM ` + r.table + w.sql() + ` ORDER BY name` + w.page(lp)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()
	list := []*entity.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	query := `
		UPDATE ` + r.table + ` SET code = $2, name = $3, contact_person = $4, email = $5, phone = $6,
		       address = $7, tax_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.ContactPerson, p.Email, p.Phone, p.Address, p.TaxID, p.UpdatedAt)
	return writeErr("update "+r.table, err)
}

func (r *PartyRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM `+r.table+` WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete "+r.table, err)
}
