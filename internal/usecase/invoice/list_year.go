package invoice

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type ListYear struct {
	repo domain.Repository
}

func NewListYear(repo domain.Repository) *ListYear {
	return &ListYear{repo: repo}
}

// Execute devuelve las facturas del cliente con vencimiento dentro del
// año natural, ascendente: la base de la cuadrícula de doce meses.
func (uc *ListYear) Execute(
	ctx context.Context,
	clientID uuid.UUID,
	year int,
) ([]models.Invoice, error) {

	if !domain.ValidYear(year) {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	return uc.repo.ListForClientYear(ctx, clientID, year)
}
