package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httpresp"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/middleware"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/sanitize"
)

// ======================================================
// CLIENT HANDLER
// ======================================================

type ClientHandler struct {
	db      *gorm.DB
	storage ObjectStore // puede ser nil (bucket no configurado)
	audit   audit.Recorder
}

func NewClientHandler(db *gorm.DB, st ObjectStore, rec audit.Recorder) *ClientHandler {
	return &ClientHandler{db: db, storage: st, audit: rec}
}

// --------- GET /api/admin/clients ---------

func (h *ClientHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Client{}).Order("created_at DESC")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		httperr.Internal(c, "list_failed", "Error interno.")
		return
	}

	httpresp.List(c, clients)
}

// --------- POST /api/admin/clients ---------

func (h *ClientHandler) Create(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	name := sanitize.Field(body["name"], sanitize.MaxNameLen)
	email := sanitize.Email(body["email"])
	if name == "" || email == "" {
		httperr.BadRequest(c, "missing_fields", "Nombre y email son obligatorios.")
		return
	}

	client := models.Client{
		Name:        name,
		Email:       email,
		Phone:       sanitize.Phone(body["phone"]),
		ServiceType: sanitize.Field(body["service_type"], sanitize.MaxNameLen),
		Modality:    sanitize.Field(body["modality"], 20),
		Goal:        sanitize.Field(body["goal"], sanitize.MaxFieldLen),
		Notes:       sanitize.Field(body["notes"], sanitize.MaxFieldLen),
		Status:      "lead",
	}
	if status := sanitize.Field(body["status"], 20); status != "" {
		client.Status = status
	}
	if fee, ok := body["monthly_fee"].(float64); ok && fee >= 0 {
		client.MonthlyFee = fee
	}

	var existing models.Client
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		httperr.Conflict(c, "duplicate_email", "Ya existe un cliente con ese email.")
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "create_failed", "Error interno.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		ClientID: &client.ID,
		Action:   "Cliente creado",
		Details:  client.Name + " <" + client.Email + ">",
	})

	c.JSON(http.StatusCreated, client)
}

// --------- GET /api/admin/clients/:id ---------

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	httpresp.OK(c, client)
}

// --------- PATCH /api/admin/clients/:id ---------

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	updates := map[string]any{}

	if v, ok := body["name"]; ok {
		if name := sanitize.Field(v, sanitize.MaxNameLen); name != "" {
			updates["name"] = name
		}
	}
	if v, ok := body["email"]; ok {
		if email := sanitize.Email(v); email != "" && email != client.Email {
			var other models.Client
			if err := h.db.Where("email = ? AND id <> ?", email, id).First(&other).Error; err == nil {
				httperr.Conflict(c, "duplicate_email", "Ya existe un cliente con ese email.")
				return
			}
			updates["email"] = email
		}
	}
	if v, ok := body["phone"]; ok {
		updates["phone"] = sanitize.Phone(v)
	}
	if v, ok := body["service_type"]; ok {
		updates["service_type"] = sanitize.Field(v, sanitize.MaxNameLen)
	}
	if v, ok := body["modality"]; ok {
		updates["modality"] = sanitize.Field(v, 20)
	}
	if v, ok := body["goal"]; ok {
		updates["goal"] = sanitize.Field(v, sanitize.MaxFieldLen)
	}
	if v, ok := body["notes"]; ok {
		updates["notes"] = sanitize.Field(v, sanitize.MaxFieldLen)
	}
	if v, ok := body["status"]; ok {
		if status := sanitize.Field(v, 20); status != "" {
			updates["status"] = status
		}
	}
	if v, ok := body["monthly_fee"].(float64); ok && v >= 0 {
		updates["monthly_fee"] = v
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "no_valid_fields", "Ningún campo válido para actualizar.")
		return
	}

	if err := h.db.Model(&client).Updates(updates).Error; err != nil {
		httperr.Internal(c, "update_failed", "Error interno.")
		return
	}

	h.db.First(&client, "id = ?", id)
	c.JSON(http.StatusOK, client)
}

// --------- DELETE /api/admin/clients/:id ---------

// Delete hace el cascade completo: blobs del bucket, filas de archivos,
// facturas y rastro de actividad. El storage va primero — si falla, las
// filas de metadatos siguen apuntando a objetos que aún existen.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	if h.storage != nil {
		if err := h.storage.DeletePrefix(c.Request.Context(), id.String()+"/"); err != nil {
			logrus.WithError(err).Error("client delete: storage cleanup failed")
			httperr.Internal(c, "storage_delete_failed", "Error interno.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.FileRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}

		// fase 1: logs con FK directa al cliente
		if err := tx.Where("client_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		// fase 2: logs antiguos que solo mencionan al cliente en details
		// (heurística con pérdida: nombre homónimo borra de más)
		for _, like := range logMentionPatterns(&client) {
			if err := tx.Where("details LIKE ?", like).Delete(&models.ActivityLog{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&client).Error
	})
	if err != nil {
		httperr.Internal(c, "delete_failed", "Error interno.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:  userID,
		Action:  "Cliente eliminado",
		Details: client.Name + " <" + client.Email + ">",
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ======================================================
// Helpers
// ======================================================

// logMentionPatterns son los patrones de la limpieza de logs por texto:
// el nombre del cliente primero, y su email como refuerzo (los details
// de auditoría llevan "Nombre <email>").
func logMentionPatterns(client *models.Client) []string {
	patterns := []string{"%" + escapeLike(client.Name) + "%"}
	if client.Email != "" {
		patterns = append(patterns, "%"+escapeLike(client.Email)+"%")
	}
	return patterns
}

// escapeLike neutraliza los comodines de LIKE en texto de usuario.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// currentUserID lee la identidad del contexto; nil fuera de rutas admin.
func currentUserID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
