package invoice

import (
	"fmt"
	"time"
)

// Abreviaturas en castellano; el índice de mes es 0-based porque el
// front-end del admin envía índices de mes estilo Date.getMonth().
var monthAbbrev = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

const (
	MinYear = 2020
	MaxYear = 2100
)

func ValidMonth(month int) bool { return month >= 0 && month <= 11 }
func ValidYear(year int) bool   { return year >= MinYear && year <= MaxYear }

func MonthLabel(month int) string {
	if !ValidMonth(month) {
		return ""
	}
	return monthAbbrev[month]
}

// Concept genera el concepto automático de una factura mensual,
// p. ej. "Pago Ene 2026".
func Concept(month, year int) string {
	return fmt.Sprintf("Pago %s %d", MonthLabel(month), year)
}

// MonthWindow devuelve [inicio de mes, inicio del mes siguiente).
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// YearWindow devuelve [1 de enero, 1 de enero del año siguiente).
func YearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
