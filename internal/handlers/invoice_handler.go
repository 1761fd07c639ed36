package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	domain "github.com/VidaFitCoaching01/coach-backoffice/internal/domain/invoice"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httpresp"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/sanitize"
)

// ======================================================
// INVOICE HANDLER (CRUD general, fuera de la cuadrícula)
// ======================================================

type InvoiceHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewInvoiceHandler(db *gorm.DB, rec audit.Recorder) *InvoiceHandler {
	return &InvoiceHandler{db: db, audit: rec}
}

// --------- GET /api/admin/invoices ---------

func (h *InvoiceHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Invoice{}).Order("due_date DESC")

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidYear(year) {
			httperr.BadRequest(c, "invalid_year", "Año inválido.")
			return
		}
		start, end := domain.YearWindow(year)
		query = query.Where("due_date >= ? AND due_date < ?", start, end)
	}
	if status := c.Query("status"); status != "" {
		if !domain.IsValid(domain.Status(status)) {
			httperr.BadRequest(c, "invalid_status", "Estado inválido.")
			return
		}
		query = query.Where("status = ?", status)
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return
		}
		query = query.Where("client_id = ?", clientID)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		httperr.Internal(c, "list_failed", "Error interno.")
		return
	}

	httpresp.List(c, invoices)
}

// --------- POST /api/admin/invoices ---------

type createInvoiceRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Concept  string    `json:"concept"`
	DueDate  time.Time `json:"due_date" binding:"required"`
	Status   string    `json:"status"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", req.ClientID).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	status := string(domain.StatusPending)
	if req.Status != "" {
		if !domain.IsValid(domain.Status(req.Status)) {
			httperr.BadRequest(c, "invalid_status", "Estado inválido.")
			return
		}
		status = req.Status
	}

	inv := models.Invoice{
		ClientID: req.ClientID,
		Amount:   req.Amount,
		Currency: "EUR",
		Concept:  sanitize.Field(req.Concept, 255),
		Status:   status,
		DueDate:  req.DueDate,
	}
	if status == string(domain.StatusPaid) {
		now := time.Now()
		inv.PaidDate = &now
	}

	if err := h.db.Create(&inv).Error; err != nil {
		httperr.Internal(c, "create_failed", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		ClientID: &client.ID,
		Action:   "Factura creada",
		Details:  fmt.Sprintf("%s — %s — %.2f €", client.Name, inv.Concept, inv.Amount),
	})

	c.JSON(http.StatusCreated, inv)
}

// --------- PATCH /api/admin/invoices/:id ---------

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var inv models.Invoice
	if err := h.db.First(&inv, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", "Factura no encontrada.")
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	updates := map[string]any{}

	if v, ok := body["amount"].(float64); ok && v > 0 {
		updates["amount"] = v
	}
	if v, ok := body["concept"]; ok {
		if concept := sanitize.Field(v, 255); concept != "" {
			updates["concept"] = concept
		}
	}
	if v, ok := body["due_date"].(string); ok {
		due, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_due_date", "Fecha de vencimiento inválida.")
			return
		}
		updates["due_date"] = due
	}
	if v, ok := body["status"].(string); ok {
		if !domain.IsValid(domain.Status(v)) {
			httperr.BadRequest(c, "invalid_status", "Estado inválido.")
			return
		}
		updates["status"] = v

		// paid_date acompaña siempre al estado
		if v == string(domain.StatusPaid) {
			now := time.Now()
			updates["paid_date"] = &now
		} else {
			updates["paid_date"] = gorm.Expr("NULL")
		}
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "no_valid_fields", "Ningún campo válido para actualizar.")
		return
	}

	if err := h.db.Model(&inv).Updates(updates).Error; err != nil {
		httperr.Internal(c, "update_failed", "Error interno.")
		return
	}

	h.db.First(&inv, "id = ?", id)
	c.JSON(http.StatusOK, inv)
}

// --------- DELETE /api/admin/invoices/:id ---------

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var inv models.Invoice
	if err := h.db.First(&inv, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", "Factura no encontrada.")
		return
	}

	if err := h.db.Delete(&inv).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		ClientID: &inv.ClientID,
		Action:   "Factura eliminada",
		Details:  fmt.Sprintf("%s — %.2f €", inv.Concept, inv.Amount),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
