// Package pdf genera los documentos PDF de la aplicación con Maroto v2:
// reportes tabulares de exportación y el tiquete de caja de 80 mm.
package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
