package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *InvoiceGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *InvoiceGormRepository) ListClientsCreatedInYear(
	ctx context.Context,
	year int,
) ([]models.Client, error) {

	start, end := domain.YearWindow(year)

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Invoice (ensure / toggle)
// --------------------------------------------------

func (r *InvoiceGormRepository) FindForMonth(
	ctx context.Context,
	clientID uuid.UUID,
	start time.Time,
	end time.Time,
) (*models.Invoice, error) {

	// "La" factura del mes es la más reciente por created_at; si el
	// admin llegó a crear duplicados, las antiguas quedan ignoradas.
	var inv models.Invoice
	err := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND due_date >= ? AND due_date < ?",
			clientID, start, end,
		).
		Order("created_at DESC").
		First(&inv).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceGormRepository) UpdateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// --------------------------------------------------
// Listing / aggregation
// --------------------------------------------------

func (r *InvoiceGormRepository) ListForClientYear(
	ctx context.Context,
	clientID uuid.UUID,
	year int,
) ([]models.Invoice, error) {

	start, end := domain.YearWindow(year)

	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND due_date >= ? AND due_date < ?",
			clientID, start, end,
		).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceGormRepository) ListForYear(
	ctx context.Context,
	year int,
) ([]models.Invoice, error) {

	start, end := domain.YearWindow(year)

	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ?", start, end).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
