package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/messaging"
	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
	"github.com/jhoicas/Pos-api/pkg/currency"
)

// Tipos de enlace de WhatsApp.
const (
	LinkAlert   = "alert"
	LinkReceipt = "receipt"
)

var hundred = decimal.NewFromInt(100)

// Deps dependencias del caso de uso de ventas.
type Deps struct {
	Tx        TxRunner
	Sales     repository.SaleRepository
	Customers repository.CustomerRepository
	Users     repository.UserRepository
	Gate      *messaging.FirstSaleGate
	Templater *messaging.Templater
	Receipts  ReceiptRenderer
	Money     *currency.Formatter
	Business  Business
	// PhoneRegion región por defecto para normalizar teléfonos (ej. CO).
	PhoneRegion string
}

// SaleUseCase registro de ventas, recibos y enlaces de mensajería.
type SaleUseCase struct {
	d   Deps
	now func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(d Deps) *SaleUseCase {
	return &SaleUseCase{d: d, now: time.Now}
}

// Create registra la venta en una transacción: bloquea cada producto, descuenta stock y guarda
// cabecera y líneas. Luego consulta la compuerta de primera venta del día; si aplica, la respuesta
// trae el enlace de alerta para el dueño.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if len(in.Items) == 0 || in.Discount.IsNegative() || in.AmountPaid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var customerID *string
	if in.CustomerID != "" {
		c, err := uc.d.Customers.GetByID(ctx, userID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}
		customerID = &c.ID
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		UserID:        userID,
		CustomerID:    customerID,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
		AmountPaid:    in.AmountPaid,
		CreatedAt:     uc.now(),
	}

	err := uc.d.Tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		subtotal, taxTotal := decimal.Zero, decimal.Zero
		items := make([]entity.SaleItem, 0, len(in.Items))
		for _, req := range in.Items {
			if !req.Quantity.IsPositive() || req.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			p, err := products.GetForUpdate(ctx, userID, req.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", req.ProductID, domain.ErrNotFound)
			}
			if p.Stock.LessThan(req.Quantity) {
				return fmt.Errorf("producto %s: %w", p.Name, domain.ErrInsufficientStock)
			}
			unit := p.Price
			if req.UnitPrice.IsPositive() {
				unit = req.UnitPrice
			}
			line := req.Quantity.Mul(unit).Round(2)
			subtotal = subtotal.Add(line)
			taxTotal = taxTotal.Add(line.Mul(p.TaxRate).Div(hundred))
			items = append(items, entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    req.Quantity,
				UnitPrice:   unit,
				TaxRate:     p.TaxRate,
				LineTotal:   line,
			})
			if err := products.DecrementStock(ctx, p.ID, req.Quantity); err != nil {
				return fmt.Errorf("producto %s: %w", p.Name, err)
			}
		}

		sale.Items = items
		sale.Subtotal = subtotal
		sale.TaxTotal = taxTotal.Round(2)
		gross := subtotal.Add(sale.TaxTotal)
		if sale.Discount.GreaterThan(gross) {
			return fmt.Errorf("descuento mayor que el total: %w", domain.ErrInvalidInput)
		}
		sale.Total = gross.Sub(sale.Discount)
		if sale.AmountPaid.IsPositive() {
			if sale.AmountPaid.LessThan(sale.Total) {
				return fmt.Errorf("monto recibido menor que el total: %w", domain.ErrInvalidInput)
			}
			sale.Change = sale.AmountPaid.Sub(sale.Total)
		}
		return sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.CreateSaleResponse{Sale: uc.toResponse(sale)}
	first, err := uc.d.Gate.IsFirstSaleOfDay(ctx, userID, sale.CreatedAt)
	if err != nil {
		// la venta ya quedó registrada; la alerta es opcional
		log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo evaluar la primera venta del día")
		return out, nil
	}
	out.FirstSaleOfDay = first
	if first {
		link, err := uc.link(ctx, userID, sale, LinkAlert, "")
		if err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo armar el enlace de alerta")
			return out, nil
		}
		out.AlertLink = link.URL
	}
	return out, nil
}

// Get obtiene una venta del usuario.
func (uc *SaleUseCase) Get(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	s, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := uc.toResponse(s)
	return &resp, nil
}

// ReceiptPDF genera el tiquete de caja. Devuelve también el número de la venta para el nombre del archivo.
func (uc *SaleUseCase) ReceiptPDF(ctx context.Context, userID, id string) ([]byte, int64, error) {
	s, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, 0, err
	}
	r := entity.ReceiptFromSale(s)
	r.BusinessName = uc.d.Business.Name
	r.BusinessAddress = uc.d.Business.Address
	r.BusinessPhone = uc.d.Business.Phone
	r.BusinessTaxID = uc.d.Business.TaxID
	r.Number = fmt.Sprintf("%06d", s.Number)
	if s.CustomerID != nil {
		c, err := uc.d.Customers.GetByID(ctx, userID, *s.CustomerID)
		if err != nil {
			return nil, 0, err
		}
		if c != nil {
			r.CustomerName = c.Name
		}
	}
	doc, err := uc.d.Receipts.RenderReceipt(ctx, r)
	if err != nil {
		return nil, 0, err
	}
	return doc, s.Number, nil
}

// WhatsAppLink enlace wa.me para la venta. kind=alert usa el teléfono del dueño; kind=receipt el del
// cliente. phone no vacío reemplaza el destinatario.
func (uc *SaleUseCase) WhatsAppLink(ctx context.Context, userID, id, kind, phone string) (*dto.WhatsAppLinkResponse, error) {
	if kind == "" {
		kind = LinkReceipt
	}
	if kind != LinkAlert && kind != LinkReceipt {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return uc.link(ctx, userID, s, kind, phone)
}

func (uc *SaleUseCase) link(ctx context.Context, userID string, s *entity.Sale, kind, phone string) (*dto.WhatsAppLinkResponse, error) {
	var msg string
	switch kind {
	case LinkAlert:
		msg = uc.d.Templater.SaleAlert(s)
		if phone == "" {
			owner, err := uc.d.Users.GetByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			if owner != nil {
				phone = owner.Phone
			}
		}
	default:
		msg = uc.d.Templater.Receipt(s)
		if phone == "" && s.CustomerID != nil {
			c, err := uc.d.Customers.GetByID(ctx, userID, *s.CustomerID)
			if err != nil {
				return nil, err
			}
			if c != nil {
				phone = c.Phone
			}
		}
	}
	return &dto.WhatsAppLinkResponse{
		URL:     messaging.WhatsAppLink(phone, uc.d.PhoneRegion, msg),
		Message: msg,
	}, nil
}

func (uc *SaleUseCase) load(ctx context.Context, userID, id string) (*entity.Sale, error) {
	s, err := uc.d.Sales.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SaleUseCase) toResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
		})
	}
	return dto.SaleResponse{
		ID:             s.ID,
		Number:         s.Number,
		CustomerID:     s.CustomerID,
		Subtotal:       s.Subtotal,
		TaxTotal:       s.TaxTotal,
		Discount:       s.Discount,
		Total:          s.Total,
		TotalFormatted: uc.d.Money.Format(s.Total),
		PaymentMethod:  s.PaymentMethod,
		AmountPaid:     s.AmountPaid,
		Change:         s.Change,
		CreatedAt:      s.CreatedAt,
		Items:          items,
	}
}
