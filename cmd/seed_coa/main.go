// seed_coa genera un script SQL con el plan de cuentas de una empresa a partir de un CSV
// exportado por el sistema contable anterior (separador ';', codificación Latin-1 o Windows-1252).
//
// Columnas: codigo;nombre;tipo[;saldo]. tipo ∈ asset, liability, equity, revenue, expense
// (también acepta activo, pasivo, patrimonio, ingreso, gasto).
//
// Uso: go run ./cmd/seed_coa -company <uuid> [-charset cp1252] [-out seed.sql] plan.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	companyID := flag.String("company", "", "UUID de la empresa destino")
	charset := flag.String("charset", "latin1", "latin1 | cp1252 | utf8")
	outPath := flag.String("out", "", "archivo de salida (stdout si vacío)")
	flag.Parse()

	if _, err := uuid.Parse(*companyID); err != nil || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_coa -company <uuid> [-charset latin1|cp1252|utf8] [-out seed.sql] plan.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := parseChart(decoder(*charset, f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, *companyID, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d cuentas, %d filas omitidas\n", len(rows), skipped)
}

func decoder(charset string, r io.Reader) io.Reader {
	var enc encoding.Encoding
	switch strings.ToLower(charset) {
	case "utf8", "utf-8":
		return r
	case "cp1252", "windows-1252":
		enc = charmap.Windows1252
	default:
		enc = charmap.ISO8859_1
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// chartRow cuenta leída del CSV.
type chartRow struct {
	Code    string
	Name    string
	Type    string
	Balance decimal.Decimal
}
