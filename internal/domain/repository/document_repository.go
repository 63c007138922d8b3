package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// DocumentRepository persistencia de un tipo de documento comercial (cabecera + líneas).
// Cada instancia está atada a un entity.DocumentKind.
type DocumentRepository interface {
	Kind() entity.DocumentKind
	Create(ctx context.Context, doc *entity.TradeDocument) error
	// GetByID devuelve el documento con sus líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.TradeDocument, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.TradeDocument, error)
	// Update actualiza la cabecera; si replaceItems, reemplaza todas las líneas.
	Update(ctx context.Context, doc *entity.TradeDocument, replaceItems bool) error
	Delete(ctx context.Context, companyID, id string) error
}

// SequenceRepository contador atómico de numeración por empresa, prefijo y año.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, prefix string, year int) (int64, error)
}
