package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia.

type fakePartyRepo struct {
	rows map[string]*entity.Party
}

func newFakePartyRepo() *fakePartyRepo { return &fakePartyRepo{rows: map[string]*entity.Party{}} }

func (f *fakePartyRepo) Create(_ context.Context, p *entity.Party) error {
	for _, r := range f.rows {
		if r.CompanyID == p.CompanyID && r.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakePartyRepo) List(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.Party, error) {
	var out []*entity.Party
	for _, r := range f.rows {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePartyRepo) Update(_ context.Context, p *entity.Party) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePartyRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeCompanyRepo struct {
	rows map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.rows[id], nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	f.rows[c.ID] = c
	return nil
}

type fakeCategoryRepo struct {
	rows []*entity.AccountCategory
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.AccountCategory) error {
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.AccountCategory, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.AccountCategory, error) {
	var out []*entity.AccountCategory
	for _, c := range f.rows {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(context.Context, *entity.AccountCategory) error { return nil }
func (f *fakeCategoryRepo) Delete(context.Context, string, string) error          { return nil }

type fakeAccountRepo struct {
	rows map[string]*entity.Account
}

func (f *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	f.rows[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	return f.rows[id], nil
}

func (f *fakeAccountRepo) List(context.Context, string, repository.AccountFilter) ([]*entity.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Update(context.Context, *entity.Account) error { return nil }
func (f *fakeAccountRepo) Delete(context.Context, string, string) error  { return nil }

type fakeJournalRepo struct {
	rows     map[string]*entity.Journal
	replaced bool
}

func (f *fakeJournalRepo) Create(_ context.Context, j *entity.Journal) error {
	f.rows[j.ID] = j
	return nil
}

func (f *fakeJournalRepo) GetByID(_ context.Context, id string) (*entity.Journal, error) {
	j, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	cp.Items = append([]entity.JournalItem(nil), j.Items...)
	return &cp, nil
}

func (f *fakeJournalRepo) List(context.Context, string, repository.DocumentFilter) ([]*entity.Journal, error) {
	return nil, nil
}

func (f *fakeJournalRepo) Update(_ context.Context, j *entity.Journal, replaceItems bool) error {
	f.replaced = replaceItems
	f.rows[j.ID] = j
	return nil
}

func (f *fakeJournalRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeTransactionRepo struct{}

func (fakeTransactionRepo) Create(context.Context, *entity.Transaction) error { return nil }
func (fakeTransactionRepo) GetByID(context.Context, string) (*entity.Transaction, error) {
	return nil, nil
}
func (fakeTransactionRepo) List(context.Context, string, repository.DocumentFilter) ([]*entity.Transaction, error) {
	return nil, nil
}
func (fakeTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (fakeTransactionRepo) Delete(context.Context, string, string) error      { return nil }

type fakeSequence struct {
	mu   sync.Mutex
	next map[string]int64
}

func newFakeSequence() *fakeSequence { return &fakeSequence{next: map[string]int64{}} }

func (f *fakeSequence) Next(_ context.Context, companyID, prefix string, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s/%s/%d", companyID, prefix, year)
	f.next[key]++
	return f.next[key], nil
}

type memTransactionRepo struct {
	rows map[string]*entity.Transaction
}

func (f *memTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *memTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *memTransactionRepo) List(_ context.Context, companyID string, _ repository.DocumentFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.rows {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *memTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *memTransactionRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

// fakePaymentRepo guarda pagos con sus aplicaciones; los pagos anulados no cuentan como pagado.
type fakePaymentRepo struct {
	rows map[string]*entity.Payment
}

func copyPayment(p *entity.Payment) *entity.Payment {
	cp := *p
	cp.Items = append([]entity.PaymentItem(nil), p.Items...)
	return &cp
}

func (f *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	f.rows[p.ID] = copyPayment(p)
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return copyPayment(p), nil
}

func (f *fakePaymentRepo) List(_ context.Context, companyID string, _ repository.DocumentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.rows {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, p *entity.Payment, _ bool) error {
	f.rows[p.ID] = copyPayment(p)
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakePaymentRepo) InvoiceHasPayments(_ context.Context, invoiceID string) (bool, error) {
	for _, p := range f.rows {
		for _, it := range p.Items {
			if it.InvoiceID == invoiceID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) PartyHasPayments(_ context.Context, paymentType, partyID string) (bool, error) {
	for _, p := range f.rows {
		if p.Type == paymentType && p.PartyID == partyID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) paidFor(invoiceID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range f.rows {
		if p.Status == entity.StatusCanceled {
			continue
		}
		for _, it := range p.Items {
			if it.InvoiceID == invoiceID {
				total = total.Add(it.Amount)
			}
		}
	}
	return total
}

// fakeInvoiceRepo facturas cuyo AmountPaid se deriva de fakePaymentRepo, como en la consulta SQL.
type fakeInvoiceRepo struct {
	kind     entity.DocumentKind
	rows     map[string]*entity.TradeDocument
	payments *fakePaymentRepo
}

func (f *fakeInvoiceRepo) Kind() entity.DocumentKind { return f.kind }

func (f *fakeInvoiceRepo) Create(_ context.Context, d *entity.TradeDocument) error {
	f.rows[d.ID] = d
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.TradeDocument, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.AmountPaid = f.payments.paidFor(id)
	return &cp, nil
}

func (f *fakeInvoiceRepo) List(context.Context, string, repository.DocumentFilter) ([]*entity.TradeDocument, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, d *entity.TradeDocument, _ bool) error {
	f.rows[d.ID] = d
	return nil
}

func (f *fakeInvoiceRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeUserRepo struct {
	rows map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{rows: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.rows {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	list, err := f.ListByCompany(ctx, companyID, repository.ListParams{})
	return len(list), err
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) List(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	f.rows[id].Cost = cost
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeWarehouseRepo struct {
	rows map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	f.rows[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWarehouseRepo) List(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.rows {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	f.rows[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) Delete(_ context.Context, _, id string) error {
	delete(f.rows, id)
	return nil
}
