package handler

import (
	"net/http"

	"brokerbook/internal/dto"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

type DataHandler struct{ svc service.DataService }

func NewDataHandler(svc service.DataService) *DataHandler { return &DataHandler{svc: svc} }

// Reset godoc
// @Summary Delete all suppliers, buyers, deals, deliveries and counters
// @Tags data
// @Accept json
// @Param body body dto.ResetRequest true "Must contain the phrase DELETE ALL DATA"
// @Success 204
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/data/reset [post]
func (h *DataHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetAllData(c.Request.Context(), req.Confirmation); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
