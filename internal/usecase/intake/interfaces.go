package intake

import (
	"context"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/llm"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type Mailer interface {
	SendContactNotification(ctx context.Context, msg mailer.ContactMessage) error
	SendIntakeSummary(ctx context.Context, form mailer.IntakeForm) error
	SendPlanEmail(ctx context.Context, to, name, analysis string) error
	SendLeadNotification(ctx context.Context, lead mailer.LeadProfile) error
}

type ClientStore interface {
	UpsertByEmail(ctx context.Context, in *models.Client) (*models.Client, bool, error)
}

type Analyst interface {
	DraftAnalysis(ctx context.Context, p llm.Profile) (string, error)
}
