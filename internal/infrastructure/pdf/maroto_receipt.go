package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/pkg/currency"
)

// Tiquete térmico de 80 mm; el alto crece con el número de líneas.
const (
	receiptWidth     = 80.0
	receiptBaseH     = 130.0
	receiptItemH     = 6.0
	receiptNameRunes = 20
	receiptDateFmt   = "02/01/2006 15:04"
)

// ReceiptGenerator genera el tiquete de caja.
type ReceiptGenerator struct {
	money *currency.Formatter
	loc   *time.Location
}

// NewReceiptGenerator construye el generador con el formateador de moneda y la zona horaria
// del negocio. loc nil = UTC.
func NewReceiptGenerator(money *currency.Formatter, loc *time.Location) *ReceiptGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptGenerator{money: money, loc: loc}
}

// RenderReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *ReceiptGenerator) RenderReceipt(_ context.Context, r *entity.Receipt) ([]byte, error) {
	totals := r.Resolve()

	cfg := config.NewBuilder().
		WithDimensions(receiptWidth, receiptBaseH+receiptItemH*float64(len(r.Items))).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Recibo "+r.Number, true).
		WithAuthor(r.BusinessName, true).
		Build()
	m := maroto.New(cfg)

	m.AddRows(businessRows(r)...)
	m.AddRows(separator())
	m.AddRows(
		kv("Recibo:", nonEmpty(r.Number, "—")),
		kv("Fecha:", g.receiptDate(r.Date)),
	)
	if r.CustomerName != "" {
		m.AddRows(kv("Cliente:", r.CustomerName))
	}
	m.AddRows(separator())

	m.AddRows(itemHeaderRow())
	for i, it := range r.Items {
		m.AddRows(g.itemRow(it, totals.LineTotals[i]))
	}
	m.AddRows(separator())

	m.AddRows(
		g.amount("Subtotal", totals.Subtotal, false),
		g.amount("Impuestos", totals.Tax, false),
	)
	if !totals.Discount.IsZero() {
		m.AddRows(g.amount("Descuento", totals.Discount.Neg(), false))
	}
	m.AddRows(g.amount("TOTAL", totals.Total, true))
	m.AddRows(separator())

	m.AddRows(kv("Pago:", nonEmpty(entity.PaymentLabel(r.PaymentMethod), "—")))
	if totals.AmountPaid.IsPositive() {
		m.AddRows(
			g.amount("Recibido", totals.AmountPaid, false),
			g.amount("Cambio", totals.Change, false),
		)
	}

	m.AddRows(row.New(4))
	m.AddRows(text.NewRow(6, nonEmpty(r.Footer, "¡Gracias por su compra!"), props.Text{
		Align: align.Center, Style: fontstyle.Italic, Top: 1,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// receiptDate fecha del recibo en la hora local del negocio.
func (g *ReceiptGenerator) receiptDate(t time.Time) string {
	return t.In(g.loc).Format(receiptDateFmt)
}

func businessRows(r *entity.Receipt) []core.Row {
	rows := []core.Row{
		text.NewRow(7, nonEmpty(r.BusinessName, "Recibo de venta"), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary,
		}),
	}
	for _, s := range []string{r.BusinessAddress, r.BusinessPhone, taxIDLine(r.BusinessTaxID)} {
		if s != "" {
			rows = append(rows, text.NewRow(4, s, props.Text{Align: align.Center, Color: colorGray}))
		}
	}
	return rows
}

func taxIDLine(id string) string {
	if id == "" {
		return ""
	}
	return "NIT: " + id
}

func separator() core.Row {
	return line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.2, Style: linestyle.Dashed})
}

func kv(label, value string) core.Row {
	return row.New(4).Add(
		text.NewCol(4, label, props.Text{Style: fontstyle.Bold}),
		text.NewCol(8, value, props.Text{Align: align.Right}),
	)
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return text.NewCol(size, label, props.Text{Style: fontstyle.Bold, Align: a})
	}
	return row.New(5).Add(
		h("Producto", 5, align.Left),
		h("Cant", 2, align.Center),
		h("Precio", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *ReceiptGenerator) itemRow(it entity.ReceiptItem, lineTotal decimal.Decimal) core.Row {
	return row.New(receiptItemH).Add(
		text.NewCol(5, truncateRunes(it.Name, receiptNameRunes), props.Text{Top: 1}),
		text.NewCol(2, it.Quantity.String(), props.Text{Align: align.Center, Top: 1}),
		text.NewCol(2, g.money.Number(it.UnitPrice), props.Text{Align: align.Right, Top: 1}),
		text.NewCol(3, g.money.Number(lineTotal), props.Text{Align: align.Right, Top: 1}),
	)
}

func (g *ReceiptGenerator) amount(label string, v decimal.Decimal, grand bool) core.Row {
	style := props.Text{Align: align.Right}
	labelStyle := props.Text{Style: fontstyle.Bold}
	h := 4.0
	if grand {
		style = props.Text{Align: align.Right, Style: fontstyle.Bold, Size: 10, Color: colorPrimary}
		labelStyle = props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary}
		h = 6
	}
	return row.New(h).Add(
		text.NewCol(5, label, labelStyle),
		text.NewCol(7, g.money.Format(v), style),
	)
}

// truncateRunes corta s a n caracteres (runas), sin partir caracteres multibyte.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
