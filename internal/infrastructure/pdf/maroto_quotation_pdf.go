// Package pdf implementa la representación imprimible de una cotización ("ver cotización").
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + RUC        │  COTIZACIÓN + estado + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A / Área / Supervisor / Encargado                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Servicio | Tipo | Tipo de cobro | Moneda | Importe   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Inicio y mes de facturación / Funcionarios / Observaciones  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/ports"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.QuotationPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.QuotationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author se usa en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(_ context.Context, q *entity.Quotation, client *entity.Client) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("pdf: cotización nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Cliente, true).
		WithAuthor(nonEmpty(g.author, "contable-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billingRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(line.NewRow(3))
	for _, r := range notesRows(q) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: cliente + RUC (izq) y estado + fecha de alta (der).
func headerRow(q *entity.Quotation, client *entity.Client) core.Row {
	name := q.Cliente
	if client != nil && client.RazonSocial != "" {
		name = client.RazonSocial
	}
	fecha := "—"
	if !q.CreatedAt.IsZero() {
		fecha = q.CreatedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+nonEmpty(q.RUC, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN DE SERVICIOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(q.Cotizacion, "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billingRow: a quién se factura y responsables.
func billingRow(q *entity.Quotation) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FACTURAR A", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(q.FacturarA, q.Cliente), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Área: %s   |   Supervisor: %s   |   Encargado: %s",
				nonEmpty(q.Area, "—"),
				nonEmpty(q.Supervisor, "—"),
				nonEmpty(q.Encargado, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Servicio", 5, align.Left),
		h("Tipo", 2, align.Left),
		h("Tipo de cobro", 2, align.Left),
		h("Moneda", 1, align.Center),
		h("Importe", 2, align.Right),
	)
}

func tableDetailRow(q *entity.Quotation) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(q.Servicio, 5, align.Left),
		cell(q.Tipo, 2, align.Left),
		cell(q.TipoCobro, 2, align.Left),
		cell(q.Moneda, 1, align.Center),
		cell(formatAmount(q.Importe), 2, align.Right),
	)
}

func notesRows(q *entity.Quotation) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Top: 6, Color: colorGray})
	}
	rows := []core.Row{
		row.New(12).Add(
			col.New(4).Add(label("Inicio de facturación"), value(nonEmpty(q.InicioFacturacion, "—"))),
			col.New(4).Add(label("Mes de facturación"), value(nonEmpty(q.MesFacturacion, "—"))),
			col.New(4).Add(label("Producto StarSoft"), value(nonEmpty(q.ProductoStarSoft, "—"))),
		),
	}
	if q.Funcionarios != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(label("Funcionarios"), value(q.Funcionarios))))
	}
	if q.Observaciones != "" {
		rows = append(rows, row.New(16).Add(col.New(12).Add(label("Observaciones"), value(q.Observaciones))))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount normaliza el importe con separador de miles y dos decimales.
// Si no se puede interpretar se imprime tal como fue cargado.
// Ej: "2500.5" → "2,500.50"
func formatAmount(s string) string {
	d, err := export.ParseAmount(s)
	if err != nil {
		return s
	}
	fixed := d.Abs().StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
