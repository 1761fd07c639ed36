package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
)

const defaultBaseURL = "https://api.resend.com"

// Mailer envía email transaccional vía la API REST de Resend.
type Mailer struct {
	apiKey   string
	from     string
	notifyTo string

	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		apiKey:   cfg.ResendAPIKey,
		from:     cfg.MailFrom,
		notifyTo: cfg.NotifyEmail,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) send(ctx context.Context, to, subject, html string) error {
	if m.apiKey == "" {
		return fmt.Errorf("mailer: RESEND_API_KEY no configurada")
	}

	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// el cuerpo se loguea server-side, nunca viaja al cliente HTTP
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("resend send failed")

		return fmt.Errorf("mailer: envío falló con status %d", resp.StatusCode)
	}

	return nil
}

// SendContactNotification avisa al dueño del negocio de un mensaje corto
// del formulario de contacto.
func (m *Mailer) SendContactNotification(ctx context.Context, msg ContactMessage) error {
	subject := fmt.Sprintf("Nuevo mensaje de contacto — %s", msg.Name)
	return m.send(ctx, m.notifyTo, subject, BuildContactHTML(msg))
}

// SendIntakeSummary envía al dueño el resumen seccionado del
// cuestionario de admisión.
func (m *Mailer) SendIntakeSummary(ctx context.Context, form IntakeForm) error {
	subject := fmt.Sprintf("Nuevo cuestionario de admisión — %s", form.Name)
	return m.send(ctx, m.notifyTo, subject, BuildIntakeHTML(form))
}

// SendPlanEmail envía al lead su análisis personalizado.
func (m *Mailer) SendPlanEmail(ctx context.Context, to, name, analysis string) error {
	subject := fmt.Sprintf("%s, tu análisis personalizado está listo", name)
	return m.send(ctx, to, subject, BuildPlanHTML(name, analysis))
}

// SendLeadNotification avisa internamente de un lead del funnel.
func (m *Mailer) SendLeadNotification(ctx context.Context, lead LeadProfile) error {
	subject := fmt.Sprintf("Nuevo lead del funnel — %s", lead.Name)
	return m.send(ctx, m.notifyTo, subject, BuildLeadHTML(lead))
}
