package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

func TestDelta(t *testing.T) {
	// base cero → nil, nunca división por cero
	assert.Nil(t, Delta(150, 0))
	assert.Nil(t, Delta(0, 0))

	d := Delta(150, 100)
	require.NotNil(t, d)
	assert.Equal(t, 50, *d)

	d = Delta(50, 100)
	require.NotNil(t, d)
	assert.Equal(t, -50, *d)

	d = Delta(100, 100)
	require.NotNil(t, d)
	assert.Equal(t, 0, *d)

	// redondeo al entero más próximo
	d = Delta(101, 3)
	require.NotNil(t, d)
	assert.Equal(t, 3267, *d)
}

func TestDashboard_Buckets(t *testing.T) {
	clientID := uuid.New()

	due := func(month int) time.Time {
		return time.Date(2026, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	}

	repo := &fakeRepo{
		clients: []models.Client{
			{ID: uuid.New(), CreatedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), CreatedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), CreatedAt: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
			// otro año: fuera del informe
			{ID: uuid.New(), CreatedAt: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
		},
		invoices: []*models.Invoice{
			{ID: uuid.New(), ClientID: clientID, Amount: 100, Status: "paid", DueDate: due(1)},
			{ID: uuid.New(), ClientID: clientID, Amount: 150, Status: "paid", DueDate: due(2)},
			{ID: uuid.New(), ClientID: clientID, Amount: 40, Status: "pending", DueDate: due(2)},
			{ID: uuid.New(), ClientID: clientID, Amount: 999, Status: "cancelled", DueDate: due(2)},
		},
	}

	uc := NewDashboard(repo)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	}

	res, err := uc.Execute(context.Background(), 2026)
	require.NoError(t, err)

	feb, mar := res.Months[1], res.Months[2]

	assert.Equal(t, 100.0, feb.Revenue)
	assert.Equal(t, 0.0, feb.Pending)
	assert.Equal(t, 1, feb.Invoices)
	assert.Equal(t, 1, feb.NewClients)

	assert.Equal(t, 150.0, mar.Revenue)
	assert.Equal(t, 40.0, mar.Pending)
	assert.Equal(t, 3, mar.Invoices) // las canceladas cuentan, no suman
	assert.Equal(t, 2, mar.NewClients)

	assert.Equal(t, 250.0, res.TotalRevenue)
	assert.Equal(t, 40.0, res.TotalPending)
	assert.Equal(t, 3, res.TotalClients)

	// deltas de marzo contra febrero
	require.NotNil(t, res.Deltas.Revenue)
	assert.Equal(t, 50, *res.Deltas.Revenue)
	require.NotNil(t, res.Deltas.NewClients)
	assert.Equal(t, 100, *res.Deltas.NewClients)
	assert.Nil(t, res.Deltas.Pending) // febrero sin pendiente → base cero
}

func TestDashboard_BucketsByUTCMonth(t *testing.T) {
	clientID := uuid.New()

	// medianoche UTC del 1 de marzo, expresada en una zona al oeste:
	// el bucket debe seguir siendo marzo, no febrero
	west := time.FixedZone("UTC-5", -5*3600)
	dueMarch := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).In(west)

	repo := &fakeRepo{
		clients: []models.Client{
			{ID: uuid.New(), CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).In(west)},
		},
		invoices: []*models.Invoice{
			{ID: uuid.New(), ClientID: clientID, Amount: 80, Status: "paid", DueDate: dueMarch},
		},
	}

	uc := NewDashboard(repo)
	uc.now = func() time.Time {
		return time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	}

	res, err := uc.Execute(context.Background(), 2026)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Months[1].Revenue)
	assert.Equal(t, 80.0, res.Months[2].Revenue)
	assert.Equal(t, 1, res.Months[2].Invoices)

	assert.Equal(t, 0, res.Months[3].NewClients)
	assert.Equal(t, 1, res.Months[4].NewClients)
}

func TestDashboard_NoDeltasForPastYear(t *testing.T) {
	repo := &fakeRepo{}

	uc := NewDashboard(repo)
	uc.now = func() time.Time {
		return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	}

	res, err := uc.Execute(context.Background(), 2025)
	require.NoError(t, err)

	assert.Nil(t, res.Deltas.Revenue)
	assert.Nil(t, res.Deltas.Pending)
	assert.Nil(t, res.Deltas.NewClients)
}
