package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httpresp"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/storage"
)

const maxFileSize = 10 << 20 // 10 MB

// Tipos aceptados en el área de cliente (informes, analíticas, fotos).
var allowedFileTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"text/csv":        true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":   true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ObjectStore es lo que los handlers necesitan del object storage;
// *storage.Storage lo implementa.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	SignedURL(ctx context.Context, key string) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

var _ ObjectStore = (*storage.Storage)(nil)

// ======================================================
// FILE HANDLER
// ======================================================

type FileHandler struct {
	db      *gorm.DB
	storage ObjectStore // puede ser nil (bucket no configurado)
	audit   audit.Recorder
}

func NewFileHandler(db *gorm.DB, st ObjectStore, rec audit.Recorder) *FileHandler {
	return &FileHandler{db: db, storage: st, audit: rec}
}

// --------- GET /api/admin/files?client_id= ---------

func (h *FileHandler) List(c *gin.Context) {
	query := h.db.Model(&models.FileRecord{}).Order("created_at DESC")

	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return
		}
		query = query.Where("client_id = ?", clientID)
	}

	var files []models.FileRecord
	if err := query.Find(&files).Error; err != nil {
		httperr.Internal(c, "list_failed", "Error interno.")
		return
	}

	httpresp.List(c, files)
}

// --------- POST /api/admin/files (multipart) ---------

// Upload sube el blob primero y solo después inserta la fila de
// metadatos: una fila de archivo existe únicamente si el objeto ya está
// almacenado de forma durable. Las validaciones baratas (uuid, tamaño,
// tipo) van antes de tocar base o bucket.
func (h *FileHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		logrus.Error("file upload: object storage not configured")
		httperr.Internal(c, "storage_not_configured", "Almacenamiento no disponible.")
		return
	}

	clientID, err := uuid.Parse(c.PostForm("client_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Falta el archivo.")
		return
	}
	if header.Size > maxFileSize {
		httperr.BadRequest(c, "file_too_large", "El archivo supera el máximo de 10 MB.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedFileTypes[contentType] {
		httperr.BadRequest(c, "invalid_file_type", "Tipo de archivo no permitido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", clientID).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	src, err := header.Open()
	if err != nil {
		httperr.Internal(c, "read_failed", "Error interno.")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxFileSize+1))
	if err != nil {
		httperr.Internal(c, "read_failed", "Error interno.")
		return
	}
	if len(data) > maxFileSize {
		httperr.BadRequest(c, "file_too_large", "El archivo supera el máximo de 10 MB.")
		return
	}

	now := time.Now()
	ctx := c.Request.Context()

	key := storage.ObjectKey(clientID.String(), now, header.Filename)
	if err := h.storage.Upload(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		logrus.WithError(err).Error("file upload failed")
		httperr.Internal(c, "upload_failed", "No se pudo subir el archivo.")
		return
	}

	fileURL, err := h.storage.SignedURL(ctx, key)
	if err != nil {
		logrus.WithError(err).Error("file signed url failed")
		httperr.Internal(c, "upload_failed", "No se pudo subir el archivo.")
		return
	}

	record := models.FileRecord{
		ClientID: clientID,
		FileName: header.Filename,
		FileKey:  key,
		FileURL:  fileURL,
		FileType: contentType,
	}

	// miniatura best-effort para imágenes; su fallo no bloquea la subida
	if storage.IsImage(contentType) {
		if thumb, err := storage.Thumbnail(data, contentType); err != nil {
			logrus.WithError(err).Warn("thumbnail generation failed")
		} else {
			thumbKey := storage.ThumbKey(clientID.String(), now, header.Filename)
			if err := h.storage.Upload(ctx, thumbKey, "image/webp", bytes.NewReader(thumb)); err != nil {
				logrus.WithError(err).Warn("thumbnail upload failed")
			} else if url, err := h.storage.SignedURL(ctx, thumbKey); err == nil {
				record.ThumbKey = thumbKey
				record.ThumbURL = url
			}
		}
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "create_failed", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		ClientID: &client.ID,
		Action:   "Archivo subido",
		Details:  client.Name + " — " + header.Filename,
	})

	c.JSON(http.StatusCreated, record)
}

// --------- GET /api/admin/files/:id/url ---------

// SignedURL reemite la URL firmada a partir de la clave durable del
// objeto: la persistida caduca a los 7 días como máximo.
func (h *FileHandler) SignedURL(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Almacenamiento no disponible.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var record models.FileRecord
	if err := h.db.First(&record, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "file_not_found", "Archivo no encontrado.")
		return
	}

	ctx := c.Request.Context()

	fileURL, err := h.storage.SignedURL(ctx, record.FileKey)
	if err != nil {
		logrus.WithError(err).Error("file signed url refresh failed")
		httperr.Internal(c, "sign_failed", "Error interno.")
		return
	}

	resp := gin.H{"url": fileURL}
	if record.ThumbKey != "" {
		if thumbURL, err := h.storage.SignedURL(ctx, record.ThumbKey); err == nil {
			resp["thumb_url"] = thumbURL
		}
	}

	c.JSON(http.StatusOK, resp)
}
