package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

func TestToggleStatus_FullCycle(t *testing.T) {
	client := testClient()
	repo := &fakeRepo{clients: []models.Client{client}}
	rec := &fakeRecorder{}

	today := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	ensure := NewEnsureMonth(repo, rec, nil)
	toggle := NewToggleStatus(repo, rec)
	toggle.now = func() time.Time { return today }

	_, err := ensure.Execute(context.Background(), EnsureMonthInput{
		ClientID: client.ID, Month: 2, Year: 2026, Amount: 80,
	})
	require.NoError(t, err)

	in := ToggleStatusInput{ClientID: client.ID, Month: 2, Year: 2026}

	// pending → paid
	res, err := toggle.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "paid", res.Status)
	require.NotNil(t, res.Invoice.PaidDate)
	assert.Equal(t, today, *res.Invoice.PaidDate)

	// paid → cancelled
	res, err = toggle.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)
	assert.Nil(t, res.Invoice.PaidDate)

	// cancelled: sin transición por toggle
	res, err = toggle.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, res.Status)
	assert.Nil(t, res.Invoice)

	// acciones registradas
	var actions []string
	for _, ev := range rec.events {
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{
		"Factura creada (pendiente)",
		"Pago confirmado",
		"Pago cancelado",
	}, actions)
}

func TestToggleStatus_NoInvoice(t *testing.T) {
	client := testClient()
	repo := &fakeRepo{clients: []models.Client{client}}

	toggle := NewToggleStatus(repo, &fakeRecorder{})

	res, err := toggle.Execute(context.Background(), ToggleStatusInput{
		ClientID: client.ID, Month: 5, Year: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, res.Status)
}

func TestToggleStatus_RecreateAfterCancel(t *testing.T) {
	client := testClient()
	repo := &fakeRepo{clients: []models.Client{client}}
	rec := &fakeRecorder{}

	ensure := NewEnsureMonth(repo, rec, nil)
	toggle := NewToggleStatus(repo, rec)

	in := EnsureMonthInput{ClientID: client.ID, Month: 9, Year: 2026, Amount: 80}

	_, err := ensure.Execute(context.Background(), in)
	require.NoError(t, err)

	tin := ToggleStatusInput{ClientID: client.ID, Month: 9, Year: 2026}
	_, _ = toggle.Execute(context.Background(), tin) // paid
	_, _ = toggle.Execute(context.Background(), tin) // cancelled

	// re-facturar el mes reabre el ciclo: pending otra vez
	inv, err := ensure.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "pending", inv.Status)

	res, err := toggle.Execute(context.Background(), tin)
	require.NoError(t, err)
	assert.Equal(t, "paid", res.Status)
}
