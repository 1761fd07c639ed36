package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type ToggleStatusInput struct {
	UserID   *uuid.UUID
	ClientID uuid.UUID

	Month int
	Year  int
}

type ToggleStatusResult struct {
	Status  string          `json:"status"`
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

type ToggleStatus struct {
	repo  domain.Repository
	audit audit.Recorder

	now func() time.Time
}

func NewToggleStatus(repo domain.Repository, rec audit.Recorder) *ToggleStatus {
	return &ToggleStatus{
		repo:  repo,
		audit: rec,
		now:   time.Now,
	}
}

// Execute avanza "la" factura del mes un paso del ciclo. Sin factura,
// o con factura cancelada, devuelve status "none" sin tocar nada.
func (uc *ToggleStatus) Execute(
	ctx context.Context,
	in ToggleStatusInput,
) (*ToggleStatusResult, error) {

	if !domain.ValidMonth(in.Month) {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if !domain.ValidYear(in.Year) {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	start, end := domain.MonthWindow(in.Month, in.Year)

	inv, err := uc.repo.FindForMonth(ctx, in.ClientID, start, end)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &ToggleStatusResult{Status: domain.StatusNone}, nil
	}

	if !domain.Advance(inv, uc.now()) {
		return &ToggleStatusResult{Status: domain.StatusNone}, nil
	}

	if err := uc.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	action := "Pago confirmado"
	if inv.Status == string(domain.StatusCancelled) {
		action = "Pago cancelado"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		ClientID: &client.ID,
		Action:   action,
		Details: fmt.Sprintf(
			"%s — %s %d — %.2f €",
			client.Name,
			domain.MonthLabel(in.Month),
			in.Year,
			inv.Amount,
		),
	})

	return &ToggleStatusResult{Status: inv.Status, Invoice: inv}, nil
}
