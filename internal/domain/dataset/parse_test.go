package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain/dataset"
)

func TestParseCSV_CabeceraYTipos(t *testing.T) {
	rows := dataset.ParseCSV("name, price ,stock,sku\nArroz, 2500 ,10,\"00123\"\nAzúcar,3100.5,abc,X1\n")
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"name", "price", "stock", "sku"}, rows[0].Keys())
	assert.Equal(t, map[string]any{"name": "Arroz", "price": 2500.0, "stock": 10.0, "sku": 123.0}, rows[0].Map(),
		"una celda numérica entre comillas también se convierte")
	assert.Equal(t, map[string]any{"name": "Azúcar", "price": 3100.5, "stock": "abc", "sku": "X1"}, rows[1].Map())
}

func TestParseCSV_ComillasNumericasYTexto(t *testing.T) {
	rows := dataset.ParseCSV("name,price,stock,note\n\"Pan\",\"1,5\",\" 3 \",\"  con espacios \"\n")
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{"name": "Pan", "price": "1,5", "stock": 3.0, "note": "  con espacios "}, rows[0].Map())
}

func TestParseCSV_EntradaVacia(t *testing.T) {
	assert.Empty(t, dataset.ParseCSV(""))
	assert.Empty(t, dataset.ParseCSV("\n\n"))
	assert.Empty(t, dataset.ParseCSV("name,price"), "solo cabecera no produce filas")
}

func TestParseCSV_ComillasDoblesEscapadas(t *testing.T) {
	rows := dataset.ParseCSV("name,note\n\"Caja \"\"grande\"\"\",ok")
	require.Len(t, rows, 1)
	v, _ := rows[0].Get("name")
	assert.Equal(t, `Caja "grande"`, v)
}

func TestParseCSV_ComaYSaltoDentroDeComillas(t *testing.T) {
	rows := dataset.ParseCSV("name,qty\r\n\"A,B\",2\r\n\"línea 1\nlínea 2\",3\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"name": "A,B", "qty": 2.0}, rows[0].Map())
	assert.Equal(t, map[string]any{"name": "línea 1\nlínea 2", "qty": 3.0}, rows[1].Map())
}

func TestParseCSV_FilaCortaOmiteColumnas(t *testing.T) {
	rows := dataset.ParseCSV("name,price,stock\nArroz,100")
	require.Len(t, rows, 1)
	_, ok := rows[0].Get("stock")
	assert.False(t, ok, "una celda faltante no se agrega a la fila")
}

func TestParseCSV_IgnoraBOM(t *testing.T) {
	rows := dataset.ParseCSV("\uFEFFname,qty\nA,1")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"name", "qty"}, rows[0].Keys())
}

func TestParseJSON(t *testing.T) {
	arr := dataset.ParseJSON(`[{"a":1}]`)
	require.Len(t, arr, 1)
	assert.Equal(t, map[string]any{"a": 1.0}, arr[0])

	single := dataset.ParseJSON(`{"a":1}`)
	require.Len(t, single, 1)
	assert.Equal(t, map[string]any{"a": 1.0}, single[0])

	assert.Empty(t, dataset.ParseJSON("not json"))
	assert.NotNil(t, dataset.ParseJSON("not json"), "el resultado vacío no es nil")
}

func TestParseJSONStrict_PropagaError(t *testing.T) {
	_, err := dataset.ParseJSONStrict("{")
	assert.Error(t, err)
}

func TestRowsFromJSON_OmiteNoObjetos(t *testing.T) {
	rows := dataset.RowsFromJSON([]any{map[string]any{"b": 2.0, "a": "x"}, "suelto", 3.0})
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0].Keys())
}
