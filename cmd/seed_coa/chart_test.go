package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseChart_Latin1(t *testing.T) {
	raw := "codigo;nombre;tipo;saldo\n1105;Caja general;activo;1500,50\n4135;Comercio al por mayor y al por menor;Ingreso;\n2408;IVA por pagar;liability\n9999;Sin tipo;otro\n1105;Duplicada;asset\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(strings.Replace(raw, "Caja general", "Caja genérica", 1))
	require.NoError(t, err)

	rows, skipped, err := parseChart(decoder("latin1", strings.NewReader(encoded)))
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, 3, skipped) // encabezado, tipo desconocido, código repetido
	assert.Equal(t, "Caja genérica", rows[0].Name)
	assert.Equal(t, "asset", rows[0].Type)
	assert.Equal(t, "1500.5", rows[0].Balance.String())
	assert.Equal(t, "revenue", rows[1].Type)
	assert.Equal(t, "liability", rows[2].Type)
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	var buf bytes.Buffer
	rows, _, err := parseChart(strings.NewReader("5195;Gastos d'oficina;gasto\n"))
	require.NoError(t, err)

	require.NoError(t, writeSQL(&buf, "11111111-1111-1111-1111-111111111111", rows))
	sql := buf.String()
	assert.Contains(t, sql, "'Gastos d''oficina'")
	assert.Contains(t, sql, "type = 'expense'")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(sql), "COMMIT;"))
}
