package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// fakeRepo implementa domain.Repository sobre slices en memoria.
type fakeRepo struct {
	clients  []models.Client
	invoices []*models.Invoice

	created int
	updated int
}

func (f *fakeRepo) GetClient(_ context.Context, id uuid.UUID) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeRepo) ListClientsCreatedInYear(_ context.Context, year int) ([]models.Client, error) {
	var out []models.Client
	for _, c := range f.clients {
		if c.CreatedAt.Year() == year {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindForMonth(
	_ context.Context,
	clientID uuid.UUID,
	start, end time.Time,
) (*models.Invoice, error) {

	var newest *models.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID != clientID {
			continue
		}
		if inv.DueDate.Before(start) || !inv.DueDate.Before(end) {
			continue
		}
		if newest == nil || inv.CreatedAt.After(newest.CreatedAt) {
			newest = inv
		}
	}
	return newest, nil
}

func (f *fakeRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	f.invoices = append(f.invoices, inv)
	f.created++
	return nil
}

func (f *fakeRepo) UpdateInvoice(_ context.Context, inv *models.Invoice) error {
	f.updated++
	return nil
}

func (f *fakeRepo) ListForClientYear(
	_ context.Context,
	clientID uuid.UUID,
	year int,
) ([]models.Invoice, error) {

	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID == clientID && inv.DueDate.Year() == year {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForYear(_ context.Context, year int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.DueDate.Year() == year {
			out = append(out, *inv)
		}
	}
	return out, nil
}

// fakeRecorder captura eventos de auditoría.
type fakeRecorder struct {
	events []audit.Event
}

func (f *fakeRecorder) Dispatch(ev audit.Event) {
	f.events = append(f.events, ev)
}
