package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItem línea imprimible de un recibo. LineTotal nil = cantidad * precio.
type ReceiptItem struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal *decimal.Decimal
}

// Receipt datos del tiquete de caja (80mm). Los montos nil se derivan en Resolve.
type Receipt struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	BusinessTaxID   string
	Number          string
	Date            time.Time
	CustomerName    string
	Items           []ReceiptItem
	Subtotal        *decimal.Decimal
	Tax             *decimal.Decimal
	Discount        *decimal.Decimal
	Total           *decimal.Decimal
	PaymentMethod   string
	AmountPaid      *decimal.Decimal
	Change          *decimal.Decimal
	Footer          string
}

// ResolvedReceipt montos del recibo sin huecos.
type ResolvedReceipt struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Change     decimal.Decimal
	LineTotals []decimal.Decimal
}

// Resolve completa los montos ausentes:
//   - línea: cantidad * precio unitario, redondeada a 2 decimales
//   - subtotal: suma de líneas
//   - impuesto y descuento: 0
//   - total: subtotal + impuesto - descuento
//   - cambio: pagado - total si se pagó algo, si no 0
func (r *Receipt) Resolve() ResolvedReceipt {
	out := ResolvedReceipt{LineTotals: make([]decimal.Decimal, len(r.Items))}
	sum := decimal.Zero
	for i, it := range r.Items {
		lt := it.Quantity.Mul(it.UnitPrice).Round(2)
		if it.LineTotal != nil {
			lt = *it.LineTotal
		}
		out.LineTotals[i] = lt
		sum = sum.Add(lt)
	}
	out.Subtotal = orDefault(r.Subtotal, sum)
	out.Tax = orDefault(r.Tax, decimal.Zero)
	out.Discount = orDefault(r.Discount, decimal.Zero)
	out.Total = orDefault(r.Total, out.Subtotal.Add(out.Tax).Sub(out.Discount))
	out.AmountPaid = orDefault(r.AmountPaid, decimal.Zero)
	change := decimal.Zero
	if out.AmountPaid.IsPositive() {
		change = out.AmountPaid.Sub(out.Total)
	}
	out.Change = orDefault(r.Change, change)
	return out
}

func orDefault(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return def
}

// ReceiptFromSale arma el recibo de una venta persistida.
func ReceiptFromSale(s *Sale) *Receipt {
	items := make([]ReceiptItem, 0, len(s.Items))
	for _, it := range s.Items {
		lt := it.LineTotal
		items = append(items, ReceiptItem{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: &lt,
		})
	}
	subtotal, tax, discount, total := s.Subtotal, s.TaxTotal, s.Discount, s.Total
	paid, change := s.AmountPaid, s.Change
	return &Receipt{
		Date:          s.CreatedAt,
		Items:         items,
		Subtotal:      &subtotal,
		Tax:           &tax,
		Discount:      &discount,
		Total:         &total,
		PaymentMethod: s.PaymentMethod,
		AmountPaid:    &paid,
		Change:        &change,
	}
}
