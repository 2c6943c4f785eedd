package handler

import (
	"net/http"

	"brokerbook/internal/dto"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

type PartyHandler struct{ svc service.PartyService }

func NewPartyHandler(svc service.PartyService) *PartyHandler { return &PartyHandler{svc: svc} }

// CreateSupplier godoc
// @Summary Create a supplier
// @Tags parties
// @Accept json
// @Produce json
// @Param body body dto.CreatePartyRequest true "Supplier"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/suppliers [post]
func (h *PartyHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreatePartyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSuppliers godoc
// @Summary List suppliers
// @Tags parties
// @Produce json
// @Success 200 {array} model.Supplier
// @Router /v1/suppliers [get]
func (h *PartyHandler) ListSuppliers(c *gin.Context) {
	resp, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBuyer godoc
// @Summary Create a buyer
// @Tags parties
// @Accept json
// @Produce json
// @Param body body dto.CreatePartyRequest true "Buyer"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/buyers [post]
func (h *PartyHandler) CreateBuyer(c *gin.Context) {
	var req dto.CreatePartyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBuyer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBuyers godoc
// @Summary List buyers
// @Tags parties
// @Produce json
// @Success 200 {array} model.Buyer
// @Router /v1/buyers [get]
func (h *PartyHandler) ListBuyers(c *gin.Context) {
	resp, err := h.svc.ListBuyers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
