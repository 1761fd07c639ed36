package invoice

import (
	"time"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Advance aplica un paso del toggle manteniendo el invariante
// paid_date != nil ⟺ status == paid. Devuelve false cuando no hay
// transición definida (factura cancelada).
func Advance(inv *models.Invoice, now time.Time) bool {
	next, ok := Next(Status(inv.Status))
	if !ok {
		return false
	}

	inv.Status = string(next)
	switch next {
	case StatusPaid:
		inv.PaidDate = &now
	default:
		inv.PaidDate = nil
	}
	return true
}

// Reopen fuerza una factura existente (pagada o cancelada) de vuelta a
// pendiente con el nuevo importe. Es la rama "update" de ensure-month:
// reabrir el hueco del mes sin crear una fila duplicada.
func Reopen(inv *models.Invoice, amount float64) {
	inv.Status = string(StatusPending)
	inv.Amount = amount
	inv.PaidDate = nil
}
