package invoice

import (
	"context"
	"math"
	"time"

	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
)

// ======================================================
// OUTPUT
// ======================================================

type MonthBucket struct {
	Month      int     `json:"month"` // 0-based
	Label      string  `json:"label"`
	Revenue    float64 `json:"revenue"`
	Pending    float64 `json:"pending"`
	Invoices   int     `json:"invoices"`
	NewClients int     `json:"new_clients"`
}

// Deltas mes contra mes; nil cuando la base es cero (sin división).
// El delta de pendiente se invierte en el front, aquí es el crudo.
type Deltas struct {
	NewClients *int `json:"new_clients"`
	Revenue    *int `json:"revenue"`
	Pending    *int `json:"pending"`
}

type DashboardResult struct {
	Year         int             `json:"year"`
	Months       [12]MonthBucket `json:"months"`
	TotalRevenue float64         `json:"total_revenue"`
	TotalPending float64         `json:"total_pending"`
	TotalClients int             `json:"total_clients"`
	Deltas       Deltas          `json:"deltas"`
}

// ======================================================
// USE CASE
// ======================================================

type Dashboard struct {
	repo domain.Repository

	now func() time.Time
}

func NewDashboard(repo domain.Repository) *Dashboard {
	return &Dashboard{repo: repo, now: time.Now}
}

func (uc *Dashboard) Execute(
	ctx context.Context,
	year int,
) (*DashboardResult, error) {

	if !domain.ValidYear(year) {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	invoices, err := uc.repo.ListForYear(ctx, year)
	if err != nil {
		return nil, err
	}

	clients, err := uc.repo.ListClientsCreatedInYear(ctx, year)
	if err != nil {
		return nil, err
	}

	res := &DashboardResult{Year: year}
	for m := 0; m < 12; m++ {
		res.Months[m] = MonthBucket{Month: m, Label: domain.MonthLabel(m)}
	}

	// las ventanas de MonthWindow/YearWindow son UTC; los timestamps
	// escaneados del driver pueden venir en la zona del proceso
	for _, inv := range invoices {
		m := int(inv.DueDate.UTC().Month()) - 1
		res.Months[m].Invoices++

		switch inv.Status {
		case string(domain.StatusPaid):
			res.Months[m].Revenue += inv.Amount
		case string(domain.StatusPending):
			res.Months[m].Pending += inv.Amount
		}
	}

	for _, cl := range clients {
		m := int(cl.CreatedAt.UTC().Month()) - 1
		res.Months[m].NewClients++
	}

	for m := 0; m < 12; m++ {
		res.TotalRevenue += res.Months[m].Revenue
		res.TotalPending += res.Months[m].Pending
		res.TotalClients += res.Months[m].NewClients
	}

	// Deltas solo comparan el mes natural en curso con el anterior;
	// en enero (o mirando otro año) no hay base dentro del año.
	now := uc.now()
	if now.Year() == year {
		cur := int(now.Month()) - 1
		if cur > 0 {
			prev := cur - 1
			res.Deltas = Deltas{
				NewClients: Delta(
					float64(res.Months[cur].NewClients),
					float64(res.Months[prev].NewClients),
				),
				Revenue: Delta(res.Months[cur].Revenue, res.Months[prev].Revenue),
				Pending: Delta(res.Months[cur].Pending, res.Months[prev].Pending),
			}
		}
	}

	return res, nil
}

// Delta devuelve round((cur-prev)/prev*100), o nil con base cero.
func Delta(current, previous float64) *int {
	if previous == 0 {
		return nil
	}
	d := int(math.Round((current - previous) / previous * 100))
	return &d
}
