package dataset

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// bom marca de orden de bytes UTF-8; las hojas de cálculo la usan para detectar el charset.
const bom = "\uFEFF"

// Formatos de exportación.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Extension devuelve la extensión de archivo del formato. Excel usa .xlsx aunque el contenido es CSV.
func Extension(format string) (string, bool) {
	switch format {
	case FormatCSV:
		return "csv", true
	case FormatJSON:
		return "json", true
	case FormatExcel:
		return "xlsx", true
	case FormatPDF:
		return "pdf", true
	}
	return "", false
}

// ContentType tipo MIME del formato.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// FileName arma <dataset>_<fecha ISO>.<ext>.
func FileName(datasetName, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", slug.Make(datasetName), now.UTC().Format("2006-01-02"), ext)
}

// Columns orden de columnas autoritativo: las claves de la primera fila.
func Columns(records []*Row) []string {
	if len(records) == 0 {
		return []string{}
	}
	return records[0].Keys()
}

// EncodeCSV serializa las filas como CSV con cabecera. Líneas separadas por \n.
func EncodeCSV(records []*Row) []byte {
	if len(records) == 0 {
		return []byte{}
	}
	cols := Columns(records)
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, joinCSV(cols))
	for _, r := range records {
		vals := make([]string, len(cols))
		for i, c := range cols {
			v, _ := r.Get(c)
			vals[i] = formatValue(v)
		}
		lines = append(lines, joinCSV(vals))
	}
	return []byte(strings.Join(lines, "\n"))
}

// EncodeExcelCSV CSV precedido por BOM para que la hoja de cálculo detecte UTF-8.
func EncodeExcelCSV(records []*Row) []byte {
	return append([]byte(bom), EncodeCSV(records)...)
}

// EncodeJSON serializa el arreglo completo con sangría de 2 espacios.
func EncodeJSON(records []*Row) ([]byte, error) {
	if records == nil {
		records = []*Row{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// Tabulate convierte las filas en celdas de texto para reportes tabulares.
func Tabulate(records []*Row) (columns []string, rows [][]string) {
	columns = Columns(records)
	rows = make([][]string, 0, len(records))
	for _, r := range records {
		line := make([]string, len(columns))
		for i, c := range columns {
			v, _ := r.Get(c)
			line[i] = formatValue(v)
		}
		rows = append(rows, line)
	}
	return columns, rows
}

func joinCSV(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = escapeCSV(v)
	}
	return strings.Join(escaped, ",")
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

var mobileUA = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini`)

// IsMobileUserAgent detecta navegadores móviles por subcadena del user agent.
func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}
