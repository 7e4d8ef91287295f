package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Pos-api/internal/domain/dataset"
)

// wideReport a partir de cuántas columnas la página pasa a horizontal.
const wideReport = 6

// ReportGenerator arma un reporte tabular: título, cabecera con las claves de la
// primera fila y una fila por registro.
type ReportGenerator struct {
	author string
	now    func() time.Time
}

// NewReportGenerator construye el generador. author aparece en los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator {
	return &ReportGenerator{author: author, now: time.Now}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Render(_ context.Context, title string, records []*dataset.Row) ([]byte, error) {
	columns, cells := dataset.Tabulate(records)

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		WithPageNumber()
	if len(columns) > 0 {
		builder = builder.WithMaxGridSize(len(columns))
	}
	if len(columns) > wideReport {
		builder = builder.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(builder.Build())

	header := []core.Row{titleRow(title, g.now()), line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5})}
	if len(columns) > 0 {
		header = append(header, columnHeaderRow(columns))
	}
	if err := m.RegisterHeader(header...); err != nil {
		return nil, fmt.Errorf("pdf: registrar cabecera: %w", err)
	}

	if len(cells) == 0 {
		m.AddRows(text.NewRow(10, "Sin registros", props.Text{Align: align.Center, Top: 3, Color: colorGray}))
	}
	for i, values := range cells {
		r := row.New()
		for _, v := range values {
			r.Add(col.New(1).Add(text.New(v, props.Text{Size: 7, Top: 1, Left: 1, Right: 1, Bottom: 1})))
		}
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string, now time.Time) core.Row {
	return row.New(12).Add(
		col.New().Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
	)
}

func columnHeaderRow(columns []string) core.Row {
	r := row.New(7)
	for _, c := range columns {
		r.Add(col.New(1).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 1.5, Left: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}
