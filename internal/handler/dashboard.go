package handler

import (
	"net/http"
	"time"

	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary Deal count and brokerage totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts godoc
// @Summary Idle-deal and overdue-payment alerts
// @Tags dashboard
// @Produce json
// @Success 200 {array} dto.Alert
// @Router /v1/dashboard/alerts [get]
func (h *DashboardHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
