package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx. Begin sobre una tx abre un savepoint,
// así los repos que escriben cabecera + líneas funcionan igual con pool o dentro de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation 23503: la fila sigue referenciada o la referencia no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// writeErr traduce errores de escritura a errores de dominio.
func writeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundNil convierte pgx.ErrNoRows en (nil, nil) como esperan los use cases.
func notFoundNil[T any](v *T, err error, op string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// nullIfEmpty para columnas UUID opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// likePattern arma el patrón ILIKE de búsqueda libre.
func likePattern(search string) string {
	search = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(search))
	return "%" + search + "%"
}

// whereBuilder arma cláusulas WHERE con placeholders posicionales.
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhere(companyCol, companyID string) *whereBuilder {
	return &whereBuilder{conds: []string{companyCol + " = $1"}, args: []any{companyID}}
}

// add agrega una condición; usar "?" como marcador del argumento.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// addSearch agrega búsqueda ILIKE sobre varias columnas con un único argumento.
func (w *whereBuilder) addSearch(search string, cols ...string) {
	if strings.TrimSpace(search) == "" {
		return
	}
	w.args = append(w.args, likePattern(search))
	ph := fmt.Sprintf("$%d", len(w.args))
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c+" ILIKE "+ph)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) addDateRange(col string, from, to *time.Time) {
	if from != nil {
		w.add(col+" >= ?", *from)
	}
	if to != nil {
		w.add(col+" <= ?", *to)
	}
}

func (w *whereBuilder) sql() string { return " WHERE " + strings.Join(w.conds, " AND ") }

// page agrega LIMIT/OFFSET.
func (w *whereBuilder) page(p repository.ListParams) string {
	w.args = append(w.args, p.Limit, p.Offset)
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}
