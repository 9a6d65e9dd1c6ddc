// Package pdf genera la hoja de referencia de tipos de entidades nombradas
// que se entrega a los anotadores.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + número de tipos                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  por cada supertipo (a, g, i, m, n, o, p, t):                │
//	│    SUBTÍTULO: supertipo                                      │
//	│    TABLA: Código | Etiqueta                                  │
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

	"github.com/jhoicas/ne-taxonomy/internal/application/ports"
	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

var _ ports.TaxonomyPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.TaxonomyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. title se usa en la cabecera y
// en los metadatos del documento.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Named entity types"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateTaxonomyPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTaxonomyPDF(ctx context.Context, table *netype.Table) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(g.title, table.Len()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range sectionRows(table) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, n int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(fmt.Sprintf("%d tipos", n), props.Text{
			Size: 9, Align: align.Right, Color: colorGray, Top: 5,
		})),
	)
}

// sectionRows agrupa las entradas consecutivas que comparten supertipo.
func sectionRows(table *netype.Table) []core.Row {
	var rows []core.Row
	var current byte
	for c := range table.All() {
		if st := c.Code.Supertype(); st != current {
			current = st
			rows = append(rows, row.New(9).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%c_", st), props.Text{
					Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
				}),
			)))
		}
		style := fontstyle.Normal
		if c.Code.Underspecified() {
			style = fontstyle.Italic
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(string(c.Code), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1,
			})),
			col.New(10).Add(text.New(c.Label, props.Text{
				Style: style, Size: 9, Left: 2, Top: 1,
			})),
		))
	}
	return rows
}
