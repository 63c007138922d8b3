package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Mensajes de validación compartidos.
const (
	msgRequired = "This field is required"
	msgNotFound = "Referenced record not found"
	msgDate     = "Must be a date in YYYY-MM-DD format"
)

func listParams(q dto.ListQuery) repository.ListParams {
	q.Normalize()
	return repository.ListParams{Limit: q.Limit, Offset: q.Offset, Search: q.Q}
}

func page(q dto.ListQuery) dto.PageResponse {
	q.Normalize()
	return dto.PageResponse{Limit: q.Limit, Offset: q.Offset}
}

// ledgerFilter traduce la query HTTP; fechas inválidas -> ValidationError.
func ledgerFilter(q dto.LedgerQuery) (repository.DocumentFilter, error) {
	f := repository.DocumentFilter{
		ListParams: listParams(q.ListQuery),
		Status:     q.Status,
		Type:       q.Type,
		PartyID:    q.PartyID,
	}
	verr := &domain.ValidationError{}
	f.From = optionalDate(q.From, "from", verr)
	f.To = optionalDate(q.To, "to", verr)
	return f, verr.OrNil()
}

func optionalDate(s, field string, verr *domain.ValidationError) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		verr.Add(field, msgDate)
		return nil
	}
	return &t
}

// dateOrToday parsea la fecha del request o usa hoy (UTC).
func dateOrToday(s *string) time.Time {
	if s != nil && *s != "" {
		if t, err := dto.ParseDate(*s); err == nil {
			return t
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func nextNumber(ctx context.Context, seq repository.SequenceRepository, companyID, prefix string, date time.Time) (string, error) {
	n, err := seq.Next(ctx, companyID, prefix, date.Year())
	if err != nil {
		return "", err
	}
	return entity.FormatNumber(prefix, date.Year(), n), nil
}
