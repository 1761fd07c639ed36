package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

func TestAdvance_Cycle(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	inv := &models.Invoice{Status: string(StatusPending)}

	// pending → paid fija paid_date
	assert.True(t, Advance(inv, now))
	assert.Equal(t, string(StatusPaid), inv.Status)
	if assert.NotNil(t, inv.PaidDate) {
		assert.Equal(t, now, *inv.PaidDate)
	}

	// paid → cancelled limpia paid_date
	assert.True(t, Advance(inv, now))
	assert.Equal(t, string(StatusCancelled), inv.Status)
	assert.Nil(t, inv.PaidDate)

	// cancelled no tiene transición por toggle
	assert.False(t, Advance(inv, now))
	assert.Equal(t, string(StatusCancelled), inv.Status)
}

func TestReopen(t *testing.T) {
	paid := time.Now()
	inv := &models.Invoice{
		Status:   string(StatusCancelled),
		Amount:   50,
		PaidDate: &paid,
	}

	Reopen(inv, 80)

	assert.Equal(t, string(StatusPending), inv.Status)
	assert.Equal(t, 80.0, inv.Amount)
	assert.Nil(t, inv.PaidDate)
}

func TestConcept(t *testing.T) {
	assert.Equal(t, "Pago Ene 2026", Concept(0, 2026))
	assert.Equal(t, "Pago Dic 2025", Concept(11, 2025))
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(0, 2026)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), end)

	// diciembre cruza de año
	start, end = MonthWindow(11, 2026)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestValidRanges(t *testing.T) {
	assert.True(t, ValidMonth(0))
	assert.True(t, ValidMonth(11))
	assert.False(t, ValidMonth(-1))
	assert.False(t, ValidMonth(12))

	assert.True(t, ValidYear(2020))
	assert.True(t, ValidYear(2100))
	assert.False(t, ValidYear(2019))
	assert.False(t, ValidYear(2101))
}
