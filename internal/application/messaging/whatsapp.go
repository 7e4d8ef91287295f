package messaging

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const waBaseURL = "https://wa.me/"

// NormalizePhone número en formato E.164 (+573001234567) usando region para números
// locales. Si la librería no lo reconoce se conservan solo los dígitos y un '+' inicial.
func NormalizePhone(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if num, err := phonenumbers.Parse(phone, strings.ToUpper(region)); err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.E164)
	}
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink enlace wa.me con el mensaje codificado como componente de URL.
func WhatsAppLink(phone, region, text string) string {
	return waBaseURL + NormalizePhone(phone, region) + "?text=" + encodeComponent(text)
}

// encodeComponent como QueryEscape pero con los espacios en %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
