package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httpresp"
	invoiceuc "github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/invoice"
)

type DashboardHandler struct {
	dashboard *invoiceuc.Dashboard
}

func NewDashboardHandler(dashboard *invoiceuc.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// --------- GET /api/admin/dashboard?year= ---------

func (h *DashboardHandler) Get(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		var err error
		year, err = strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_year", "Año inválido.")
			return
		}
	}

	res, err := h.dashboard.Execute(c.Request.Context(), year)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	httpresp.OK(c, res)
}
