package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/sales"
)

// SaleHandler ventas, recibo PDF y enlaces de WhatsApp (módulo sales).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock en la misma transacción. first_sale_of_day indica la primera venta del día comercial (corte 02:00) y trae alert_link.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF (80mm)
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	doc, number, err := h.uc.ReceiptPDF(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo_%06d.pdf"`, number))
	return c.Send(doc)
}

// WhatsApp godoc
// @Summary      Enlace wa.me con el recibo o la alerta de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la venta"
// @Param        kind   query  string  false  "receipt | alert"  default(receipt)
// @Param        phone  query  string  false  "Destinatario; por defecto cliente (receipt) o dueño (alert)"
// @Success      200  {object}  dto.WhatsAppLinkResponse
// @Router       /api/sales/{id}/whatsapp [get]
func (h *SaleHandler) WhatsApp(c *fiber.Ctx) error {
	out, err := h.uc.WhatsAppLink(c.UserContext(), GetUserID(c), c.Params("id"), c.Query("kind"), c.Query("phone"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
