package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// exportableTables tablas del esquema que el dueño puede exportar. users queda fuera (credenciales).
var exportableTables = []string{
	"assets",
	"customers",
	"delivery_notes",
	"expenses",
	"products",
	"purchase_order_items",
	"purchase_orders",
	"sale_items",
	"sales",
	"suppliers",
	"tax_records",
}

// DatasetRepo lectura genérica de tablas para exportación, conservando el orden de columnas de la tabla.
type DatasetRepo struct {
	q Querier
}

// NewDatasetRepository construye el adaptador.
func NewDatasetRepository(q Querier) *DatasetRepo {
	return &DatasetRepo{q: q}
}

// Datasets nombres exportables en orden alfabético.
func (r *DatasetRepo) Datasets() []string {
	return slices.Clone(exportableTables)
}

// Export filas del dueño ordenadas por fecha de creación. La columna user_id no se exporta.
func (r *DatasetRepo) Export(ctx context.Context, userID, name string) ([]*dataset.Row, error) {
	if !slices.Contains(exportableTables, name) {
		return nil, domain.ErrUnsupportedDataset
	}
	query, args, err := psql.Select("*").
		From(name).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build export %s: %w", name, err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []*dataset.Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		row := dataset.NewRow()
		for i, f := range fields {
			if f.Name == "user_id" {
				continue
			}
			row.Set(f.Name, exportValue(values[i]))
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// exportValue normaliza tipos de pgx que no tienen representación de texto útil.
func exportValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	default:
		return v
	}
}
