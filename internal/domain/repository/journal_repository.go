package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// JournalRepository persistencia de asientos contables con sus líneas.
type JournalRepository interface {
	Create(ctx context.Context, j *entity.Journal) error
	GetByID(ctx context.Context, id string) (*entity.Journal, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.Journal, error)
	Update(ctx context.Context, j *entity.Journal, replaceItems bool) error
	Delete(ctx context.Context, companyID, id string) error
}

// PaymentUsage indica si una factura o contraparte está referenciada por pagos
// (payment_items y payments no tienen FK porque apuntan a dos tablas según el tipo).
type PaymentUsage interface {
	InvoiceHasPayments(ctx context.Context, invoiceID string) (bool, error)
	PartyHasPayments(ctx context.Context, paymentType, partyID string) (bool, error)
}

// PaymentRepository persistencia de pagos con sus aplicaciones a facturas.
type PaymentRepository interface {
	PaymentUsage
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment, replaceItems bool) error
	Delete(ctx context.Context, companyID, id string) error
}

// TransactionRepository persistencia de transacciones de caja y banco.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, companyID, id string) error
}
