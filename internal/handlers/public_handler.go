package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httpresp"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/sanitize"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/intake"
)

// ======================================================
// PUBLIC HANDLER
// ======================================================

// PublicHandler atiende los tres formularios del sitio público. Los
// payloads llegan sin tipar (map[string]any): todo campo pasa por
// internal/sanitize antes de usarse.
type PublicHandler struct {
	config *config.Config
	mailer intake.Mailer
	submit *intake.Submit
	plan   *intake.Plan
}

func NewPublicHandler(cfg *config.Config, m intake.Mailer, submit *intake.Submit, plan *intake.Plan) *PublicHandler {
	return &PublicHandler{
		config: cfg,
		mailer: m,
		submit: submit,
		plan:   plan,
	}
}

// --------- POST /api/contact ---------

func (h *PublicHandler) Contact(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	// bots rellenan el campo oculto: 200 silencioso, sin email
	if sanitize.HoneypotFilled(body) {
		httpresp.Success(c)
		return
	}

	name := sanitize.Field(body["name"], sanitize.MaxNameLen)
	email := sanitize.Email(body["email"])
	if name == "" || email == "" {
		httperr.BadRequest(c, "missing_fields", "Nombre y email son obligatorios.")
		return
	}

	if !h.config.MailConfigured() {
		logrus.Error("contact: mail provider not configured")
		httperr.Internal(c, "mail_not_configured", "No se pudo enviar el mensaje. Inténtalo más tarde.")
		return
	}

	msg := mailer.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   sanitize.Phone(body["phone"]),
		Message: sanitize.Field(body["message"], sanitize.MaxFieldLen),
	}

	if err := h.mailer.SendContactNotification(c.Request.Context(), msg); err != nil {
		logrus.WithError(err).Error("contact: notification send failed")
		httperr.Internal(c, "send_failed", "No se pudo enviar el mensaje. Inténtalo más tarde.")
		return
	}

	httpresp.Success(c)
}

// --------- POST /api/intake-form ---------

func (h *PublicHandler) IntakeForm(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if sanitize.HoneypotFilled(body) {
		httpresp.Success(c)
		return
	}

	name := sanitize.Field(body["name"], sanitize.MaxNameLen)
	email := sanitize.Email(body["email"])
	phone := sanitize.Phone(body["phone"])
	if name == "" || email == "" || phone == "" {
		httperr.BadRequest(c, "missing_fields", "Nombre, email y teléfono son obligatorios.")
		return
	}

	if !h.config.MailConfigured() {
		logrus.Error("intake: mail provider not configured")
		httperr.Internal(c, "mail_not_configured", "No se pudo enviar el cuestionario. Inténtalo más tarde.")
		return
	}

	field := func(key string) string {
		return sanitize.Field(body[key], sanitize.MaxFieldLen)
	}

	in := intake.SubmitInput{
		Name:  name,
		Email: email,
		Phone: phone,

		ServiceType: field("service_type"),
		Modality:    field("modality"),

		Goal:       field("goal"),
		GoalDetail: field("goal_detail"),
		Motivation: field("motivation"),

		Form: mailer.IntakeForm{
			Name:  name,
			Email: email,
			Phone: phone,
			Sections: []mailer.Section{
				{
					Title: "Datos personales",
					Fields: []mailer.Field{
						{Label: "Edad", Value: field("age")},
						{Label: "Ocupación", Value: field("occupation")},
						{Label: "Ciudad", Value: field("city")},
						{Label: "Servicio", Value: field("service_type")},
						{Label: "Modalidad", Value: field("modality")},
					},
				},
				{
					Title: "Salud",
					Fields: []mailer.Field{
						{Label: "Condiciones médicas", Value: field("health_conditions")},
						{Label: "Medicación", Value: field("medications")},
						{Label: "Lesiones", Value: field("injuries")},
						{Label: "Calidad del sueño", Value: field("sleep")},
						{Label: "Nivel de estrés", Value: field("stress")},
					},
				},
				{
					Title: "Nutrición",
					Fields: []mailer.Field{
						{Label: "Dieta actual", Value: field("current_diet")},
						{Label: "Alergias e intolerancias", Value: field("allergies")},
						{Label: "Comidas al día", Value: field("meals_per_day")},
						{Label: "Suplementos", Value: field("supplements")},
					},
				},
				{
					Title: "Entrenamiento",
					Fields: []mailer.Field{
						{Label: "Experiencia", Value: field("training_experience")},
						{Label: "Frecuencia semanal", Value: field("training_frequency")},
						{Label: "Material disponible", Value: field("equipment")},
					},
				},
				{
					Title: "Objetivos",
					Fields: []mailer.Field{
						{Label: "Objetivo principal", Value: field("goal")},
						{Label: "Detalle", Value: field("goal_detail")},
						{Label: "Motivación", Value: field("motivation")},
					},
				},
			},
		},
	}

	if err := h.submit.Execute(c.Request.Context(), in); err != nil {
		logrus.WithError(err).Error("intake: submission failed")
		httperr.Internal(c, "send_failed", "No se pudo enviar el cuestionario. Inténtalo más tarde.")
		return
	}

	httpresp.Success(c)
}

// --------- POST /api/generate-plan ---------

func (h *PublicHandler) GeneratePlan(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if sanitize.HoneypotFilled(body) {
		httpresp.Success(c)
		return
	}

	name := sanitize.Field(body["name"], sanitize.MaxNameLen)
	email := sanitize.Email(body["email"])
	phone := sanitize.Phone(body["phone"])
	if name == "" || email == "" || phone == "" {
		httperr.BadRequest(c, "missing_fields", "Nombre, email y teléfono son obligatorios.")
		return
	}

	if !h.config.MailConfigured() {
		logrus.Error("plan funnel: mail provider not configured")
		httperr.Internal(c, "mail_not_configured", "No se pudo generar el análisis. Inténtalo más tarde.")
		return
	}

	in := intake.PlanInput{
		Name:  name,
		Email: email,
		Phone: phone,

		Goal:     sanitize.Field(body["goal"], sanitize.MaxFieldLen),
		Modality: sanitize.Field(body["modality"], sanitize.MaxFieldLen),
		Notes:    sanitize.Field(body["notes"], sanitize.MaxFieldLen),
	}

	if err := h.plan.Execute(c.Request.Context(), in); err != nil {
		logrus.WithError(err).Error("plan funnel: generation failed")
		httperr.Internal(c, "plan_failed", "No se pudo generar el análisis. Inténtalo más tarde.")
		return
	}

	httpresp.Success(c)
}
