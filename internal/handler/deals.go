package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"brokerbook/internal/dto"
	"brokerbook/internal/infra"
	"brokerbook/internal/model"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

type DealHandler struct {
	deals      service.DealService
	deliveries service.DeliveryService
}

func NewDealHandler(deals service.DealService, deliveries service.DeliveryService) *DealHandler {
	return &DealHandler{deals: deals, deliveries: deliveries}
}

// List godoc
// @Summary List deals with supplier and buyer names
// @Tags deals
// @Produce json
// @Param status query string false "Pending | Delivered | Paid"
// @Param search query string false "Product, supplier or buyer substring"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {array} model.DealView
// @Router /v1/deals [get]
func (h *DealHandler) List(c *gin.Context) {
	var filter dto.DealFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.deals.ListDeals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one deal
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} model.DealView
// @Failure 404 {object} apierror.APIError
// @Router /v1/deals/{id} [get]
func (h *DealHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.deals.GetDeal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a deal; amounts are computed and frozen
// @Tags deals
// @Accept json
// @Produce json
// @Param body body dto.CreateDealRequest true "Deal"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	var req dto.CreateDealRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.deals.CreateDeal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Preview godoc
// @Summary Compute deal amounts without saving
// @Tags deals
// @Accept json
// @Produce json
// @Description Numbers bind leniently: empty or unparseable values count as zero.
// @Param body body dto.PreviewDealRequest true "Pricing terms"
// @Success 200 {object} calc.Breakdown
// @Router /v1/deals/preview [post]
func (h *DealHandler) Preview(c *gin.Context) {
	var req dto.PreviewDealRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.deals.PreviewDeal(c.Request.Context(), req.Terms())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Set a deal's status explicitly
// @Tags deals
// @Accept json
// @Param id path int true "Deal ID"
// @Param body body dto.DealStatusRequest true "Status"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/deals/{id}/status [patch]
func (h *DealHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.DealStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.deals.UpdateDealStatus(c.Request.Context(), id, model.DealStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a deal
// @Tags deals
// @Param id path int true "Deal ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/deals/{id} [delete]
func (h *DealHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deals.DeleteDeal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary godoc
// @Summary Delivery reconciliation for a deal (never 404)
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} ledger.Summary
// @Router /v1/deals/{id}/summary [get]
func (h *DealHandler) Summary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.deliveries.GetDeliverySummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NotePDF godoc
// @Summary Download the deal note as PDF
// @Tags deals
// @Produce application/pdf
// @Param id path int true "Deal ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/deals/{id}/note.pdf [get]
func (h *DealHandler) NotePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	deal, err := h.deals.GetDeal(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.deliveries.GetDeliverySummary(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := infra.WriteDealNotePDF(&buf, deal, summary); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="deal_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
