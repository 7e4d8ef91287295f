package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentMobile   = "mobile_money"
)

// PaymentLabel nombre del método de pago para tiquetes y mensajes.
func PaymentLabel(method string) string {
	switch method {
	case PaymentCash:
		return "Efectivo"
	case PaymentCard:
		return "Tarjeta"
	case PaymentTransfer:
		return "Transferencia"
	case PaymentMobile:
		return "Dinero móvil"
	}
	return method
}

// Sale cabecera de una venta.
type Sale struct {
	ID            string
	UserID        string
	CustomerID    *string
	Number        int64 // consecutivo por dueño
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal // cantidad * precio unitario, sin impuesto
}
