package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	invoiceuc "github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/invoice"
)

// ======================================================
// PAYMENTS HANDLER (cuadrícula mensual por cliente)
// ======================================================

type PaymentsHandler struct {
	ensure *invoiceuc.EnsureMonth
	toggle *invoiceuc.ToggleStatus
	list   *invoiceuc.ListYear
}

func NewPaymentsHandler(
	ensure *invoiceuc.EnsureMonth,
	toggle *invoiceuc.ToggleStatus,
	list *invoiceuc.ListYear,
) *PaymentsHandler {
	return &PaymentsHandler{
		ensure: ensure,
		toggle: toggle,
		list:   list,
	}
}

// --------- GET /api/admin/clients/:id/payments?year= ---------

func (h *PaymentsHandler) ListYear(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_year", "Año inválido.")
			return
		}
	}

	invoices, err := h.list.Execute(c.Request.Context(), clientID, year)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"invoices": invoices,
	})
}

// --------- POST /api/admin/clients/:id/payments ---------

type paymentActionRequest struct {
	Action string  `json:"action" binding:"required"` // create | toggle
	Month  *int    `json:"month" binding:"required"`
	Year   int     `json:"year" binding:"required"`
	Amount float64 `json:"amount"`
}

func (h *PaymentsHandler) Act(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req paymentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	userID := currentUserID(c)

	switch req.Action {

	case "create":
		inv, err := h.ensure.Execute(c.Request.Context(), invoiceuc.EnsureMonthInput{
			UserID:   userID,
			ClientID: clientID,
			Month:    *req.Month,
			Year:     req.Year,
			Amount:   req.Amount,
		})
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  inv.Status,
			"invoice": inv,
		})

	case "toggle":
		res, err := h.toggle.Execute(c.Request.Context(), invoiceuc.ToggleStatusInput{
			UserID:   userID,
			ClientID: clientID,
			Month:    *req.Month,
			Year:     req.Year,
		})
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)

	default:
		httperr.BadRequest(c, "invalid_action", "Acción desconocida.")
	}
}

// writeLedgerError traduce los códigos de negocio del ledger a HTTP;
// cualquier otro error es un 500 genérico.
func writeLedgerError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "invalid_month":
			httperr.BadRequest(c, be.Code, "Mes inválido.")
		case "invalid_year":
			httperr.BadRequest(c, be.Code, "Año inválido.")
		case "invalid_amount":
			httperr.BadRequest(c, be.Code, "Importe inválido.")
		case "client_not_found":
			httperr.NotFound(c, be.Code, "Cliente no encontrado.")
		default:
			httperr.BadRequest(c, be.Code, "Petición inválida.")
		}
		return
	}
	httperr.Internal(c, "internal_error", "Error interno.")
}
