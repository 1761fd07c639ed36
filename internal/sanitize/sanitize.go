package sanitize

import (
	"regexp"
	"strings"
)

// Límites usados por los formularios públicos.
const (
	MaxNameLen  = 100
	MaxFieldLen = 2000
	MaxEmailLen = 254
	MaxPhoneLen = 30
)

// HoneypotField es el campo oculto que los usuarios reales nunca rellenan.
const HoneypotField = "_hp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field recorta y trunca un valor arbitrario; todo lo que no sea string
// degrada a "". Los sanitizadores nunca fallan: el caller decide si un
// campo obligatorio vacío es un 400.
func Field(v any, max int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// Email normaliza a minúsculas y valida la forma local@dominio.tld.
// Entrada inválida devuelve "" (el caller lo trata como "ausente").
func Email(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > MaxEmailLen {
		s = s[:MaxEmailLen]
	}
	if !emailRe.MatchString(s) {
		return ""
	}
	return s
}

// Phone conserva solo dígitos, "+", "-", paréntesis y espacios.
func Phone(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if len(s) > MaxPhoneLen {
		s = s[:MaxPhoneLen]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HoneypotFilled detecta envíos automatizados: el campo oculto llegó
// con un string no vacío.
func HoneypotFilled(body map[string]any) bool {
	v, ok := body[HoneypotField]
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s != ""
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML neutraliza texto de usuario antes de interpolarlo en los
// cuerpos HTML de los emails de notificación.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
