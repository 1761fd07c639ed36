package intake

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// SubmitInput llega ya sanitizado desde el handler (campos recortados,
// email en minúsculas, honeypot descartado antes de llegar aquí).
type SubmitInput struct {
	Name  string
	Email string
	Phone string

	ServiceType string
	Modality    string

	Goal       string
	GoalDetail string
	Motivation string

	Form mailer.IntakeForm
}

// ======================================================
// USE CASE
// ======================================================

type Submit struct {
	mailer  Mailer
	clients ClientStore
	audit   audit.Recorder
}

func NewSubmit(m Mailer, clients ClientStore, rec audit.Recorder) *Submit {
	return &Submit{
		mailer:  m,
		clients: clients,
		audit:   rec,
	}
}

// Execute envía primero el email de notificación — es el efecto que
// define el éxito de la submission. El upsert CRM y el log de
// actividad son best-effort: si fallan se loguean y el usuario
// igualmente recibe su 200.
func (uc *Submit) Execute(ctx context.Context, in SubmitInput) error {

	// --------------------------------------------------
	// 1️⃣ Email (gates success)
	// --------------------------------------------------
	if err := uc.mailer.SendIntakeSummary(ctx, in.Form); err != nil {
		return err
	}

	// --------------------------------------------------
	// 2️⃣ Upsert CRM + auditoría (best-effort)
	// --------------------------------------------------
	client, created, err := uc.clients.UpsertByEmail(ctx, &models.Client{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		ServiceType: in.ServiceType,
		Modality:    in.Modality,
		Goal:        JoinGoal(in.Goal, in.GoalDetail, in.Motivation),
	})
	if err != nil {
		logrus.WithError(err).Warn("intake: client upsert failed")
		return nil
	}

	action := "Cuestionario recibido"
	if created {
		action = "Nuevo lead (cuestionario)"
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &client.ID,
		Action:   action,
		Details:  client.Name + " <" + client.Email + ">",
	})

	return nil
}

// JoinGoal ensambla el campo libre `goal` uniendo las sub-respuestas
// no vacías del cuestionario.
func JoinGoal(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ". ")
}
