package dto

import (
	"strings"
	"time"
)

// DateLayout formato de fechas en requests y responses.
const DateLayout = "2006-01-02"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListQuery paginación y búsqueda de listados (?limit=&offset=&q=).
type ListQuery struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Q      string `query:"q"`
}

// Normalize aplica límite por defecto (20) y máximo (100).
func (q *ListQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Q = strings.TrimSpace(q.Q)
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo en errores de validación (json -> mensaje).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// FormatDate fecha en formato YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr nil si la fecha no existe.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate interpreta YYYY-MM-DD en UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
