// seed genera un script SQL para poblar el catálogo de productos a partir de un
// CSV de proveedor (name,category,supplier,expiry_date,critical_threshold).
// Los catálogos exportados de ERPs antiguos suelen venir en ISO-8859-1; el
// flag -latin1 activa la transcodificación.
//
// Uso: go run ./cmd/seed [-latin1] [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: seed_products.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	name              string
	category          string
	supplier          string
	expiryDate        string
	criticalThreshold string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var reader io.Reader = f
	if *latin1 {
		reader = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], "name") {
		records = records[1:] // cabecera
	}

	rows := make([]productRow, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row := productRow{
			name:     strings.TrimSpace(rec[0]),
			category: strings.TrimSpace(rec[1]),
			supplier: strings.TrimSpace(rec[2]),
		}
		if len(rec) > 3 {
			row.expiryDate = strings.TrimSpace(rec[3])
		}
		if len(rec) > 4 {
			row.criticalThreshold = strings.TrimSpace(rec[4])
		}
		rows = append(rows, row)
	}

	// Orden estable por (categoría, nombre) para diffs legibles del script
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].category != rows[j].category {
			return rows[i].category < rows[j].category
		}
		return rows[i].name < rows[j].name
	})

	out, err := os.Create("seed_products.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear script: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintln(out, "-- Generado por cmd/seed a partir de", csvPath)
	fmt.Fprintln(out, "BEGIN;")
	for _, row := range rows {
		fmt.Fprintf(out, "INSERT INTO products (id, name, category, supplier, expiry_date, critical_threshold, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', %s, %s, now(), now());\n",
			uuid.NewString(), sqlEscape(row.name), sqlEscape(row.category), sqlEscape(row.supplier),
			sqlNullable(row.expiryDate), sqlNullableRaw(row.criticalThreshold),
		)
	}
	fmt.Fprintln(out, "COMMIT;")

	fmt.Printf("seed_products.sql generado: %d productos\n", len(rows))
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func sqlNullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + sqlEscape(s) + "'"
}

func sqlNullableRaw(s string) string {
	if s == "" {
		return "NULL"
	}
	return s
}
