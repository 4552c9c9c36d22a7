// Package export convierte filas ya obtenidas en registros planos (CSV) y agregados para gráficos.
// Funciones puras: sin estado y sin E/S más allá del io.Writer recibido.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Column define un encabezado y cómo extraer su valor de una fila.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Field par columna → valor.
type Field struct {
	Name  string
	Value string
}

// Record fila plana; el orden de los campos es el de las columnas.
type Record []Field

// Get devuelve el valor de la columna name ("" si no existe).
func (r Record) Get(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Headers devuelve los encabezados en orden.
func Headers[T any](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// ToFlatRecords aplica las columnas a cada fila conservando el orden de columnas y de filas.
func ToFlatRecords[T any](rows []T, cols []Column[T]) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[i] = Field{Name: c.Header, Value: c.Value(row)}
		}
		out = append(out, rec)
	}
	return out
}

// WriteCSV escribe la línea de encabezados y una línea por registro, separadas por coma, en UTF-8.
// Los registros deben haberse construido con las mismas columnas que headers.
func WriteCSV(w io.Writer, headers []string, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("csv: encabezados: %w", err)
	}
	line := make([]string, len(headers))
	for n, rec := range records {
		if len(rec) != len(headers) {
			return fmt.Errorf("csv: registro %d tiene %d campos, se esperaban %d", n, len(rec), len(headers))
		}
		for i, f := range rec {
			line[i] = f.Value
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("csv: registro %d: %w", n, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV construye el archivo completo en memoria.
func CSV[T any](rows []T, cols []Column[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Headers(cols), ToFlatRecords(rows, cols)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GroupAndCount cuenta filas por clave.
func GroupAndCount[T any](rows []T, keyFn func(T) string) map[string]int {
	out := make(map[string]int)
	for _, row := range rows {
		out[keyFn(row)]++
	}
	return out
}

// GroupAndSum suma importes por clave. Una fila cuyo importe no se puede interpretar
// no aporta a la suma (ni crea su grupo) y su índice se devuelve en skipped.
func GroupAndSum[T any](rows []T, keyFn func(T) string, amountFn func(T) (decimal.Decimal, error)) (sums map[string]decimal.Decimal, skipped []int) {
	sums = make(map[string]decimal.Decimal)
	for i, row := range rows {
		amount, err := amountFn(row)
		if err != nil {
			skipped = append(skipped, i)
			continue
		}
		k := keyFn(row)
		sums[k] = sums[k].Add(amount)
	}
	return sums, skipped
}

// ParseAmount interpreta un importe cargado como texto: quita separadores de miles (",") y espacios.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("importe vacío")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe inválido %q: %w", s, err)
	}
	return d, nil
}
