package dataset

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var numericCell = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

type cell struct {
	text   string
	quoted bool
}

// ParseCSV convierte texto CSV en filas. La primera línea es la cabecera.
// A las celdas entre comillas se les quitan las comillas y "" colapsa a ". Toda celda cuyo
// contenido recortado es numérico se convierte a float64; si no, las celdas sin comillas
// quedan recortadas y las entrecomilladas conservan su texto tal cual.
// Comas y saltos de línea dentro de comillas pertenecen a la celda.
func ParseCSV(text string) []*Row {
	records := splitRecords(strings.TrimPrefix(text, bom))
	if len(records) == 0 {
		return []*Row{}
	}
	header := make([]string, len(records[0]))
	for i, c := range records[0] {
		header[i] = strings.TrimSpace(c.text)
	}
	rows := make([]*Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := NewRow()
		for i, name := range header {
			if i >= len(rec) {
				break
			}
			row.Set(name, cellValue(rec[i]))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellValue(c cell) any {
	s := strings.TrimSpace(c.text)
	if numericCell.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if c.quoted {
		return c.text
	}
	return s
}

// splitRecords divide el texto en registros y celdas con una máquina de estados
// que respeta las comillas. Los registros en blanco se descartan.
func splitRecords(text string) [][]cell {
	var (
		records  [][]cell
		record   []cell
		cur      strings.Builder
		quoted   bool
		inQuotes bool
		closed   bool
	)
	flushCell := func() {
		record = append(record, cell{text: cur.String(), quoted: quoted})
		cur.Reset()
		quoted, closed = false, false
	}
	flushRecord := func() {
		flushCell()
		if !(len(record) == 1 && !record[0].quoted && strings.TrimSpace(record[0].text) == "") {
			records = append(records, record)
		}
		record = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cur.WriteRune('"')
					i++
					continue
				}
				inQuotes, closed = false, true
				continue
			}
			cur.WriteRune(r)
			continue
		}
		switch r {
		case '"':
			if !quoted && strings.TrimSpace(cur.String()) == "" {
				cur.Reset()
				quoted, inQuotes = true, true
				continue
			}
			cur.WriteRune(r)
		case ',':
			flushCell()
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				continue
			}
			flushRecord()
		case '\n':
			flushRecord()
		default:
			if closed && (r == ' ' || r == '\t') {
				continue
			}
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || quoted || len(record) > 0 {
		flushRecord()
	}
	return records
}

// ParseJSON decodifica texto JSON. Un arreglo se devuelve tal cual; cualquier otro valor
// se envuelve en un arreglo de un elemento. Un error de parseo se registra y devuelve vacío.
func ParseJSON(text string) []any {
	out, err := ParseJSONStrict(text)
	if err != nil {
		log.Warn().Err(err).Msg("dataset: JSON inválido, se devuelve conjunto vacío")
		return []any{}
	}
	return out
}

// ParseJSONStrict igual que ParseJSON pero propaga el error de parseo.
func ParseJSONStrict(text string) ([]any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	if arr, ok := v.([]any); ok {
		return arr, nil
	}
	return []any{v}, nil
}

// RowsFromJSON convierte los objetos decodificados en filas; los valores que no son objetos se omiten.
func RowsFromJSON(values []any) []*Row {
	rows := make([]*Row, 0, len(values))
	for _, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, RowFromMap(m))
	}
	return rows
}
