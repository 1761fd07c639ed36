package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// ======================================================
// SEARCH HANDLER
// ======================================================

type SearchHandler struct {
	db *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{db: db}
}

type searchResult struct {
	Type string `json:"type"` // client | invoice
	ID   string `json:"id"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

const searchLimit = 10

// --------- GET /api/admin/search?q= ---------

// Search busca clientes por nombre/email y facturas por concepto.
// Query vacía devuelve [] sin tocar la base.
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []searchResult{})
		return
	}

	like := "%" + escapeLike(q) + "%"
	results := []searchResult{}

	var clients []models.Client
	if err := h.db.
		Where("name ILIKE ? OR email ILIKE ?", like, like).
		Order("created_at DESC").
		Limit(searchLimit).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "search_failed", "Error interno.")
		return
	}
	for _, cl := range clients {
		results = append(results, searchResult{
			Type:     "client",
			ID:       cl.ID.String(),
			Title:    cl.Name,
			Subtitle: cl.Email,
		})
	}

	var invoices []models.Invoice
	if err := h.db.
		Where("concept ILIKE ?", like).
		Order("due_date DESC").
		Limit(searchLimit).
		Find(&invoices).Error; err != nil {

		httperr.Internal(c, "search_failed", "Error interno.")
		return
	}
	for _, inv := range invoices {
		results = append(results, searchResult{
			Type:     "invoice",
			ID:       inv.ID.String(),
			Title:    inv.Concept,
			Subtitle: inv.Status,
		})
	}

	c.JSON(http.StatusOK, results)
}
