package repository

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/dataset"
)

// DatasetRepository lectura genérica de tablas del esquema para exportación.
type DatasetRepository interface {
	// Datasets nombres de tablas exportables.
	Datasets() []string
	// Export devuelve las filas del dueño con el orden de columnas de la tabla.
	Export(ctx context.Context, userID, name string) ([]*dataset.Row, error)
}
