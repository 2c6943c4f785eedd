package handler

import (
	"net/http"

	"brokerbook/internal/dto"
	"brokerbook/internal/model"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct{ svc service.DeliveryService }

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// List godoc
// @Summary List deliveries with deal, supplier and buyer names
// @Tags deliveries
// @Produce json
// @Param deal_id query int false "Deal ID"
// @Param status query string false "Pending | Paid"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {array} model.DeliveryView
// @Router /v1/deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	var filter dto.DeliveryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListDeliveries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Record godoc
// @Summary Record a delivery against a deal
// @Description Over-delivery answers 409 with the warning; resend with "confirmed": true to record it.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param body body dto.RecordDeliveryRequest true "Delivery"
// @Success 201 {object} dto.RecordDeliveryResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} dto.ConfirmationResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/deliveries [post]
func (h *DeliveryHandler) Record(c *gin.Context) {
	var req dto.RecordDeliveryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordDelivery(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStatus godoc
// @Summary Set a delivery's payment status
// @Tags deliveries
// @Accept json
// @Param id path int true "Delivery ID"
// @Param body body dto.DeliveryStatusRequest true "Status"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.DeliveryStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateDeliveryStatus(c.Request.Context(), id, model.PaymentStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a delivery (deal status is not reverted)
// @Tags deliveries
// @Param id path int true "Delivery ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteDelivery(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
