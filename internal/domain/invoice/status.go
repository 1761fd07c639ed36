package invoice

// ===============================
// Invoice Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// StatusNone es el resultado de un toggle sin factura objetivo (o con
// una factura cancelada, que solo se reabre vía "ensure month").
const StatusNone = "none"

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Next define el ciclo del toggle: pending → paid → cancelled. Una
// factura cancelada no tiene transición por toggle; vuelve a pending
// solo cuando el admin vuelve a facturar el mes.
func Next(current Status) (Status, bool) {
	switch current {
	case StatusPending:
		return StatusPaid, true
	case StatusPaid:
		return StatusCancelled, true
	}
	return current, false
}
