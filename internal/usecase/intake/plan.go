package intake

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/llm"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type PlanInput struct {
	Name  string
	Email string
	Phone string

	Goal     string
	Modality string
	Notes    string
}

// Plan es el funnel público: redacta un análisis con el modelo y manda
// dos emails — el análisis al lead y la notificación interna.
type Plan struct {
	mailer  Mailer
	clients ClientStore
	analyst Analyst
	audit   audit.Recorder
}

func NewPlan(m Mailer, clients ClientStore, analyst Analyst, rec audit.Recorder) *Plan {
	return &Plan{
		mailer:  m,
		clients: clients,
		analyst: analyst,
		audit:   rec,
	}
}

// Execute falla la petición si la generación o cualquiera de los dos
// envíos de email fallan; el upsert CRM sigue siendo best-effort.
func (uc *Plan) Execute(ctx context.Context, in PlanInput) error {

	analysis, err := uc.analyst.DraftAnalysis(ctx, llm.Profile{
		Name:     in.Name,
		Goal:     in.Goal,
		Modality: in.Modality,
		Notes:    in.Notes,
	})
	if err != nil {
		return err
	}

	if err := uc.mailer.SendPlanEmail(ctx, in.Email, in.Name, analysis); err != nil {
		return err
	}

	if err := uc.mailer.SendLeadNotification(ctx, mailer.LeadProfile{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Goal:     in.Goal,
		Modality: in.Modality,
	}); err != nil {
		return err
	}

	client, _, err := uc.clients.UpsertByEmail(ctx, &models.Client{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Modality: in.Modality,
		Goal:     JoinGoal(in.Goal, in.Notes),
	})
	if err != nil {
		logrus.WithError(err).Warn("plan funnel: client upsert failed")
		return nil
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &client.ID,
		Action:   "Análisis enviado (funnel)",
		Details:  client.Name + " <" + client.Email + ">",
	})

	return nil
}
