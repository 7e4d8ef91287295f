package dataio

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

// Formats formatos de exportación en el orden en que se ofrecen.
var Formats = []string{dataset.FormatCSV, dataset.FormatJSON, dataset.FormatExcel, dataset.FormatPDF}

// File archivo listo para descargar.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ExportUseCase exportación de tablas del usuario a CSV, JSON, Excel (CSV) o PDF.
type ExportUseCase struct {
	datasets repository.DatasetRepository
	reports  ReportRenderer
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(datasets repository.DatasetRepository, reports ReportRenderer) *ExportUseCase {
	return &ExportUseCase{datasets: datasets, reports: reports, now: time.Now}
}

// Datasets conjuntos exportables.
func (uc *ExportUseCase) Datasets() []string {
	return uc.datasets.Datasets()
}

// Export serializa las filas del usuario en el formato pedido.
func (uc *ExportUseCase) Export(ctx context.Context, userID, name, format string) (*File, error) {
	if format == "" {
		format = dataset.FormatCSV
	}
	ext, ok := dataset.Extension(format)
	if !ok {
		return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
	}
	if !lo.Contains(uc.datasets.Datasets(), name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedDataset, name)
	}
	records, err := uc.datasets.Export(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch format {
	case dataset.FormatCSV:
		content = dataset.EncodeCSV(records)
	case dataset.FormatExcel:
		content = dataset.EncodeExcelCSV(records)
	case dataset.FormatJSON:
		content, err = dataset.EncodeJSON(records)
	case dataset.FormatPDF:
		content, err = uc.reports.Render(ctx, reportTitle(name), records)
	}
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", name, err)
	}
	exportsTotal.WithLabelValues(name, format).Inc()
	return &File{
		Name:        dataset.FileName(name, ext, uc.now()),
		ContentType: dataset.ContentType(format),
		Content:     content,
	}, nil
}

var reportTitles = map[string]string{
	"assets":               "activos",
	"customers":            "clientes",
	"delivery_notes":       "remisiones",
	"expenses":             "gastos",
	"products":             "productos",
	"purchase_order_items": "ítems de órdenes de compra",
	"purchase_orders":      "órdenes de compra",
	"sale_items":           "ítems de venta",
	"sales":                "ventas",
	"suppliers":            "proveedores",
	"tax_records":          "impuestos",
}

func reportTitle(name string) string {
	if t, ok := reportTitles[name]; ok {
		return "Reporte de " + t
	}
	return "Reporte de " + name
}
