// Package dataset agrupa el parseo, la validación y la serialización de filas
// tabulares usadas por la importación y exportación de datos.
package dataset

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Row mapeo columna → valor escalar que conserva el orden de inserción de las columnas.
// La exportación toma el orden de columnas de la primera fila.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow crea una fila vacía.
func NewRow() *Row {
	return &Row{values: make(map[string]any)}
}

// RowFromMap crea una fila con las claves del mapa en orden alfabético.
func RowFromMap(m map[string]any) *Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := NewRow()
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set asigna el valor; una clave nueva se agrega al final del orden.
func (r *Row) Set(key string, value any) *Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get devuelve el valor de la columna y si existe.
func (r *Row) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys devuelve una copia del orden de columnas.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len número de columnas.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Map copia plana de la fila.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON serializa la fila como objeto respetando el orden de columnas.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
