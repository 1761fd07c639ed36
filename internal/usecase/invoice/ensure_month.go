package invoice

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type EnsureMonthInput struct {
	UserID   *uuid.UUID
	ClientID uuid.UUID

	Month  int // 0-based, estilo Date.getMonth()
	Year   int
	Amount float64
}

// PaymentLinker genera un link de pago para una factura nueva.
// Es best-effort: su fallo nunca bloquea la creación.
type PaymentLinker interface {
	CreateLink(ctx context.Context, inv *models.Invoice) (string, error)
}

// ======================================================
// USE CASE
// ======================================================

type EnsureMonth struct {
	repo     domain.Repository
	audit    audit.Recorder
	payments PaymentLinker // puede ser nil
}

func NewEnsureMonth(
	repo domain.Repository,
	rec audit.Recorder,
	payments PaymentLinker,
) *EnsureMonth {
	return &EnsureMonth{
		repo:     repo,
		audit:    rec,
		payments: payments,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute es idempotente por (cliente, mes): si ya existe "la" factura
// del mes la reabre como pendiente con el nuevo importe; si no, inserta
// una con vencimiento el día 1. Nunca produce dos filas pendientes
// rastreadas para el mismo mes.
func (uc *EnsureMonth) Execute(
	ctx context.Context,
	in EnsureMonthInput,
) (*models.Invoice, error) {

	// --------------------------------------------------
	// 1️⃣ Validación de frontera
	// --------------------------------------------------
	if !domain.ValidMonth(in.Month) {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if !domain.ValidYear(in.Year) {
		return nil, httperr.ErrBusiness("invalid_year")
	}
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	// --------------------------------------------------
	// 2️⃣ Cliente
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ "La" factura del mes (la más reciente, si hay varias)
	// --------------------------------------------------
	start, end := domain.MonthWindow(in.Month, in.Year)

	existing, err := uc.repo.FindForMonth(ctx, in.ClientID, start, end)
	if err != nil {
		return nil, err
	}

	var inv *models.Invoice

	if existing != nil {
		// Reabrir el hueco del mes sin duplicar fila
		domain.Reopen(existing, in.Amount)
		if err := uc.repo.UpdateInvoice(ctx, existing); err != nil {
			return nil, err
		}
		inv = existing
	} else {
		inv = &models.Invoice{
			ClientID: in.ClientID,
			Amount:   in.Amount,
			Currency: "EUR",
			Concept:  domain.Concept(in.Month, in.Year),
			Status:   string(domain.StatusPending),
			DueDate:  start,
		}

		if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
			return nil, err
		}

		// link de pago best-effort: su fallo no deshace la factura
		if uc.payments != nil {
			if url, err := uc.payments.CreateLink(ctx, inv); err != nil {
				logrus.WithError(err).Warn("payment link creation failed")
			} else {
				inv.PaymentURL = url
				if err := uc.repo.UpdateInvoice(ctx, inv); err != nil {
					logrus.WithError(err).Warn("payment link persist failed")
				}
			}
		}
	}

	// --------------------------------------------------
	// 4️⃣ Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		ClientID: &client.ID,
		Action:   "Factura creada (pendiente)",
		Details: fmt.Sprintf(
			"%s — %s %d — %.2f €",
			client.Name,
			domain.MonthLabel(in.Month),
			in.Year,
			in.Amount,
		),
	})

	return inv, nil
}
