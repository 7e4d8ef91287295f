package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. UnitPrice cero = precio del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer mobile_money"`
	Discount      decimal.Decimal   `json:"discount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID             string             `json:"id"`
	Number         int64              `json:"number"`
	CustomerID     *string            `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxTotal       decimal.Decimal    `json:"tax_total"`
	Discount       decimal.Decimal    `json:"discount"`
	Total          decimal.Decimal    `json:"total"`
	TotalFormatted string             `json:"total_formatted"`
	PaymentMethod  string             `json:"payment_method"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	Change         decimal.Decimal    `json:"change"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items"`
}

// CreateSaleResponse venta creada más el resultado de la alerta de primera venta del día.
type CreateSaleResponse struct {
	Sale           SaleResponse `json:"sale"`
	FirstSaleOfDay bool         `json:"first_sale_of_day"`
	AlertLink      string       `json:"alert_link,omitempty"`
}

// WhatsAppLinkResponse enlace wa.me listo para abrir.
type WhatsAppLinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
