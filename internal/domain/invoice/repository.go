package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type Repository interface {
	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	ListClientsCreatedInYear(
		ctx context.Context,
		year int,
	) ([]models.Client, error)

	// -------- Invoice (ensure / toggle) --------

	// FindForMonth devuelve "la" factura del mes: la fila más reciente
	// por created_at cuyo due_date cae en [start, end), o nil si no hay.
	// Filas más antiguas del mismo mes quedan huérfanas, no se borran.
	FindForMonth(
		ctx context.Context,
		clientID uuid.UUID,
		start time.Time,
		end time.Time,
	) (*models.Invoice, error)

	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	UpdateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	// -------- Listing / aggregation --------
	ListForClientYear(
		ctx context.Context,
		clientID uuid.UUID,
		year int,
	) ([]models.Invoice, error)

	ListForYear(
		ctx context.Context,
		year int,
	) ([]models.Invoice, error)
}
