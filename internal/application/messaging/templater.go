package messaging

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/pkg/currency"
)

// DateLayout fecha y hora tal como se muestran en mensajes (dd/mm/aaaa hh:mm).
const DateLayout = "02/01/2006 15:04"

const receiptRule = "--------------------"

// Templater arma los textos de alerta de venta y recibo para chat.
type Templater struct {
	money    *currency.Formatter
	loc      *time.Location
	business string
}

// NewTemplater construye el templater. loc nil = UTC.
func NewTemplater(money *currency.Formatter, loc *time.Location, businessName string) *Templater {
	if loc == nil {
		loc = time.UTC
	}
	return &Templater{money: money, loc: loc, business: businessName}
}

// FormatDate fecha en la zona del negocio.
func (t *Templater) FormatDate(at time.Time) string {
	return at.In(t.loc).Format(DateLayout)
}

// SaleAlert aviso corto de una venta para el dueño.
func (t *Templater) SaleAlert(s *entity.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Nueva venta #%d\n", s.Number)
	fmt.Fprintf(&b, "Total: %s\n", t.money.Format(s.Total))
	fmt.Fprintf(&b, "Pago: %s\n", entity.PaymentLabel(s.PaymentMethod))
	fmt.Fprintf(&b, "Artículos: %d\n", len(s.Items))
	fmt.Fprintf(&b, "Fecha: %s", t.FormatDate(s.CreatedAt))
	return b.String()
}

// Receipt recibo detallado por líneas.
func (t *Templater) Receipt(s *entity.Sale) string {
	var b strings.Builder
	if t.business != "" {
		fmt.Fprintf(&b, "*%s*\n", t.business)
	}
	fmt.Fprintf(&b, "Recibo #%d\n", s.Number)
	fmt.Fprintf(&b, "Fecha: %s\n", t.FormatDate(s.CreatedAt))
	b.WriteString(receiptRule + "\n")
	for _, it := range s.Items {
		fmt.Fprintf(&b, "%s x %s (%s) = %s\n",
			it.Quantity.String(), it.ProductName, t.money.Format(it.UnitPrice), t.money.Format(it.LineTotal))
	}
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", t.money.Format(s.Subtotal))
	fmt.Fprintf(&b, "Impuestos: %s\n", t.money.Format(s.TaxTotal))
	if s.Discount.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&b, "Descuento: -%s\n", t.money.Format(s.Discount))
	}
	fmt.Fprintf(&b, "*Total: %s*\n", t.money.Format(s.Total))
	fmt.Fprintf(&b, "Pago: %s\n", entity.PaymentLabel(s.PaymentMethod))
	if s.AmountPaid.IsPositive() {
		fmt.Fprintf(&b, "Recibido: %s\n", t.money.Format(s.AmountPaid))
		fmt.Fprintf(&b, "Cambio: %s\n", t.money.Format(s.Change))
	}
	b.WriteString("¡Gracias por su compra!")
	return b.String()
}
