// Package currency formatea y parsea montos según la convención del locale
// (separadores de miles y decimales, símbolo de la moneda).
package currency

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formateador de montos para un locale y una moneda. Es seguro para uso concurrente.
type Formatter struct {
	tag      language.Tag
	unit     currency.Unit
	digits   int
	printer  *message.Printer
	symbol   string
	group    rune
	decimalS rune
}

// New construye el formateador. locale en BCP-47 (ej. "es-CO"), code en ISO-4217 (ej. "COP").
func New(locale, code string, fractionDigits int) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("currency: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency: moneda %q: %w", code, err)
	}
	if fractionDigits < 0 {
		fractionDigits = 0
	}
	p := message.NewPrinter(tag)
	f := &Formatter{
		tag:     tag,
		unit:    unit,
		digits:  fractionDigits,
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
	}
	f.group, f.decimalS = separators(p)
	return f, nil
}

// MustNew igual que New pero entra en pánico ante configuración inválida.
func MustNew(locale, code string, fractionDigits int) *Formatter {
	f, err := New(locale, code, fractionDigits)
	if err != nil {
		panic(err)
	}
	return f
}

// separators deduce los separadores formateando un número conocido.
func separators(p *message.Printer) (group, dec rune) {
	s := []rune(p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1))))
	group, dec = ',', '.'
	for _, r := range s {
		if !unicode.IsDigit(r) {
			group = r
			break
		}
	}
	if len(s) >= 2 {
		dec = s[len(s)-2]
	}
	return group, dec
}

// Symbol símbolo corto de la moneda en el locale.
func (f *Formatter) Symbol() string { return f.symbol }

// Code código ISO-4217.
func (f *Formatter) Code() string { return f.unit.String() }

// Number formatea solo la cifra, con agrupación del locale.
func (f *Formatter) Number(amount decimal.Decimal) string {
	v := amount.Round(int32(f.digits)).InexactFloat64()
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(f.digits),
		number.MaxFractionDigits(f.digits),
	))
}

// Format devuelve "<símbolo> <cifra>", ej. "$ 25.000".
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.symbol + " " + f.Number(amount)
}

// Parse interpreta un monto formateado (con o sin símbolo) o un número plano.
func (f *Formatter) Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, f.unit.String())
	raw = strings.TrimPrefix(raw, f.symbol)
	raw = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("currency: monto vacío")
	}
	if f.isLocalized(raw) {
		raw = strings.ReplaceAll(raw, string(f.group), "")
		raw = strings.ReplaceAll(raw, string(f.decimalS), ".")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("currency: monto inválido %q: %w", s, err)
	}
	return d, nil
}

// isLocalized decide si raw usa los separadores del locale: contiene el separador
// decimal del locale, o el de miles separando grupos de exactamente 3 dígitos.
func (f *Formatter) isLocalized(raw string) bool {
	if f.decimalS != '.' && strings.ContainsRune(raw, f.decimalS) {
		return true
	}
	if !strings.ContainsRune(raw, f.group) {
		return false
	}
	parts := strings.Split(raw, string(f.group))
	for _, p := range parts[1:] {
		if f.decimalS != '.' {
			if i := strings.IndexRune(p, f.decimalS); i >= 0 {
				p = p[:i]
			}
		} else if i := strings.IndexByte(p, '.'); i >= 0 {
			p = p[:i]
		}
		if len(p) != 3 {
			return false
		}
	}
	return true
}
