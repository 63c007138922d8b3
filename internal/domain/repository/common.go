package repository

import "time"

// ListParams paginación y búsqueda libre (nombre o código).
type ListParams struct {
	Limit  int
	Offset int
	Search string
}

// DocumentFilter filtros de listado de documentos comerciales, pagos, asientos y transacciones.
type DocumentFilter struct {
	ListParams
	Status  string
	PartyID string
	Type    string
	From    *time.Time
	To      *time.Time
}
