package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario del punto de venta.
type Product struct {
	ID          string
	UserID      string // dueño de la fila
	SKU         string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal
	Stock       decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje, ej. 19
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tarifas de IVA aceptadas (porcentaje).
var taxRates = []decimal.Decimal{decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(19)}

// ValidTaxRate indica si rate es una tarifa de IVA aceptada (0, 5 o 19).
func ValidTaxRate(rate decimal.Decimal) bool {
	for _, r := range taxRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}
