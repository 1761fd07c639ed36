package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/intake"
)

// ------------------------------------------------------
// Fakes
// ------------------------------------------------------

type fakeMailer struct {
	contacts []mailer.ContactMessage
	intakes  []mailer.IntakeForm
}

func (f *fakeMailer) SendContactNotification(_ context.Context, msg mailer.ContactMessage) error {
	f.contacts = append(f.contacts, msg)
	return nil
}

func (f *fakeMailer) SendIntakeSummary(_ context.Context, form mailer.IntakeForm) error {
	f.intakes = append(f.intakes, form)
	return nil
}

func (f *fakeMailer) SendPlanEmail(context.Context, string, string, string) error { return nil }

func (f *fakeMailer) SendLeadNotification(context.Context, mailer.LeadProfile) error { return nil }

type fakeClients struct {
	upserts []*models.Client
}

func (f *fakeClients) UpsertByEmail(_ context.Context, in *models.Client) (*models.Client, bool, error) {
	f.upserts = append(f.upserts, in)
	return in, true, nil
}

type noopRecorder struct{}

func (noopRecorder) Dispatch(audit.Event) {}

// ------------------------------------------------------
// Setup
// ------------------------------------------------------

func newPublicRouter(t *testing.T) (*gin.Engine, *fakeMailer, *fakeClients) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ResendAPIKey: "re_test",
		NotifyEmail:  "coach@example.com",
	}

	m := &fakeMailer{}
	clients := &fakeClients{}

	submit := intake.NewSubmit(m, clients, noopRecorder{})
	plan := intake.NewPlan(m, clients, nil, noopRecorder{})

	h := NewPublicHandler(cfg, m, submit, plan)

	r := gin.New()
	r.POST("/api/contact", h.Contact)
	r.POST("/api/intake-form", h.IntakeForm)

	return r, m, clients
}

func post(t *testing.T, r *gin.Engine, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ------------------------------------------------------
// Tests
// ------------------------------------------------------

func TestIntakeForm_ValidSubmission(t *testing.T) {
	r, m, clients := newPublicRouter(t)

	w := post(t, r, "/api/intake-form", map[string]any{
		"name":  "  María García  ",
		"email": "MARIA@Example.COM",
		"phone": "+34 600 111 222",
		"goal":  "Perder grasa",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	// exactamente un email y una fila de cliente
	require.Len(t, m.intakes, 1)
	require.Len(t, clients.upserts, 1)

	assert.Equal(t, "María García", m.intakes[0].Name)
	assert.Equal(t, "maria@example.com", clients.upserts[0].Email)
}

func TestIntakeForm_HoneypotSilentSuccess(t *testing.T) {
	r, m, clients := newPublicRouter(t)

	w := post(t, r, "/api/intake-form", map[string]any{
		"name":  "Bot",
		"email": "bot@example.com",
		"phone": "600000000",
		"_hp":   "x",
	})

	// 200 con success:true pero cero emails y cero persistencia
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Empty(t, m.intakes)
	assert.Empty(t, clients.upserts)
}

func TestIntakeForm_MissingPhone(t *testing.T) {
	r, m, _ := newPublicRouter(t)

	w := post(t, r, "/api/intake-form", map[string]any{
		"name":  "María",
		"email": "maria@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, m.intakes)
}

func TestIntakeForm_InvalidEmailIsMissing(t *testing.T) {
	r, _, _ := newPublicRouter(t)

	w := post(t, r, "/api/intake-form", map[string]any{
		"name":  "María",
		"email": "not-an-email",
		"phone": "600000000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContact_SendsNotification(t *testing.T) {
	r, m, _ := newPublicRouter(t)

	w := post(t, r, "/api/contact", map[string]any{
		"name":    "Pedro",
		"email":   "pedro@example.com",
		"message": "¿Tienes plazas libres?",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, m.contacts, 1)
	assert.Equal(t, "¿Tienes plazas libres?", m.contacts[0].Message)
}

func TestContact_NameClampedTo100(t *testing.T) {
	r, m, _ := newPublicRouter(t)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	w := post(t, r, "/api/contact", map[string]any{
		"name":    string(long),
		"email":   "pedro@example.com",
		"message": "hola",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, m.contacts, 1)
	assert.Len(t, m.contacts[0].Name, 100)
}
