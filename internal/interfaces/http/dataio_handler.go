package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pos-api/internal/application/dataio"
	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
)

// Aviso transitorio para clientes móviles; el cliente lo oculta a los 5 segundos.
const (
	HeaderDownloadNotice = "X-Download-Notice"
	HeaderNoticeDismiss  = "X-Notice-Dismiss-After"
	mobileDownloadNotice = "Archivo descargado. Revise la carpeta de descargas de su dispositivo."
	noticeDismissSeconds = "5"
)

// DataIOHandler importación y exportación de datos.
type DataIOHandler struct {
	importer *dataio.ImportUseCase
	exporter *dataio.ExportUseCase
}

// NewDataIOHandler construye el handler.
func NewDataIOHandler(importer *dataio.ImportUseCase, exporter *dataio.ExportUseCase) *DataIOHandler {
	return &DataIOHandler{importer: importer, exporter: exporter}
}

// Import godoc
// @Summary      Importar productos, clientes o proveedores
// @Description  Cuerpo CSV (primera línea = cabecera) o JSON (arreglo de objetos). Con errores de validación responde 422 con todos los errores y no guarda nada.
// @Tags         import
// @Security     Bearer
// @Accept       text/csv
// @Accept       json
// @Produce      json
// @Param        entity  path  string  true  "products | customers | suppliers"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/import/{entity} [post]
func (h *DataIOHandler) Import(c *fiber.Ctx) error {
	out, err := h.importer.Import(c.UserContext(), GetUserID(c), c.Params("entity"), c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Datasets godoc
// @Summary      Conjuntos y formatos exportables
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DatasetListResponse
// @Router       /api/export [get]
func (h *DataIOHandler) Datasets(c *fiber.Ctx) error {
	return c.JSON(dto.DatasetListResponse{Datasets: h.exporter.Datasets(), Formats: dataio.Formats})
}

// Export godoc
// @Summary      Exportar un conjunto del usuario
// @Description  Nombre de archivo <conjunto>_<AAAA-MM-DD>.<ext>. excel es CSV con BOM y extensión .xlsx.
// @Tags         export
// @Security     Bearer
// @Produce      octet-stream
// @Param        dataset  path   string  true   "Tabla a exportar"
// @Param        format   query  string  false  "csv | json | excel | pdf"  default(csv)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/{dataset} [get]
func (h *DataIOHandler) Export(c *fiber.Ctx) error {
	file, err := h.exporter.Export(c.UserContext(), GetUserID(c), c.Params("dataset"), c.Query("format", dataset.FormatCSV))
	if err != nil {
		return respondError(c, err)
	}
	if dataset.IsMobileUserAgent(c.Get(fiber.HeaderUserAgent)) {
		c.Set(HeaderDownloadNotice, mobileDownloadNotice)
		c.Set(HeaderNoticeDismiss, noticeDismissSeconds)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Content)
}
