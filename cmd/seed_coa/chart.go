package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var typeAliases = map[string]string{
	"activo":     entity.AccountTypeAsset,
	"pasivo":     entity.AccountTypeLiability,
	"patrimonio": entity.AccountTypeEquity,
	"ingreso":    entity.AccountTypeRevenue,
	"ingresos":   entity.AccountTypeRevenue,
	"gasto":      entity.AccountTypeExpense,
	"gastos":     entity.AccountTypeExpense,
}

// parseChart lee filas codigo;nombre;tipo[;saldo]. Omite encabezado, filas vacías y tipos desconocidos.
func parseChart(r io.Reader) ([]chartRow, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows    []chartRow
		skipped int
		seen    = map[string]bool{}
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 3 {
			skipped++
			continue
		}
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		typ := normalizeType(rec[2])
		if code == "" || name == "" || typ == "" || seen[code] {
			skipped++
			continue
		}
		row := chartRow{Code: code, Name: name, Type: typ, Balance: decimal.Zero}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			// saldos exportados con coma decimal
			b, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
			if err != nil {
				skipped++
				continue
			}
			row.Balance = b
		}
		seen[code] = true
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func normalizeType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if entity.ValidAccountType(s) {
		return s
	}
	return typeAliases[s]
}

// writeSQL emite un INSERT por cuenta; la categoría es la primera de la empresa con el mismo tipo.
func writeSQL(w io.Writer, companyID string, rows []chartRow) error {
	if _, err := fmt.Fprintf(w, "-- Plan de cuentas para la empresa %s (seed_coa)\nBEGIN;\n", companyID); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w,
			"INSERT INTO accounts (id, company_id, category_id, code, name, balance)\n"+
				"SELECT '%s', '%s', id, '%s', '%s', %s FROM account_categories\n"+
				"WHERE company_id = '%s' AND type = '%s' ORDER BY code LIMIT 1\n"+
				"ON CONFLICT (company_id, code) DO UPDATE SET name = EXCLUDED.name;\n",
			uuid.NewString(), companyID, escapeSQL(r.Code), escapeSQL(r.Name), r.Balance.StringFixed(2),
			companyID, r.Type)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "COMMIT;")
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
