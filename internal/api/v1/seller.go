package v1

import (
	"net/http"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/service"
	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	service service.SellerService
	log     *logger.Logger
}

func NewSellerHandler(service service.SellerService, log *logger.Logger) *SellerHandler {
	return &SellerHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a seller profile
// @Description Create a seller profile; the first profile becomes the default
// @Tags Sellers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param seller body dto.CreateSellerRequest true "Seller"
// @Success 201 {object} dto.SellerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /sellers [post]
func (h *SellerHandler) CreateSeller(c *gin.Context) {
	var req dto.CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSeller(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a seller profile
// @Description Get a seller profile
// @Tags Sellers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seller ID"
// @Success 200 {object} dto.SellerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sellers/{id} [get]
func (h *SellerHandler) GetSeller(c *gin.Context) {
	resp, err := h.service.GetSeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List seller profiles
// @Description List the owner's seller profiles, default first
// @Tags Sellers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Business name search"
// @Success 200 {object} dto.ListSellersResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /sellers [get]
func (h *SellerHandler) ListSellers(c *gin.Context) {
	resp, err := h.service.ListSellers(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the default seller profile
// @Description Get the profile new invoices snapshot their seller block from
// @Tags Sellers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SellerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sellers/default [get]
func (h *SellerHandler) GetDefaultSeller(c *gin.Context) {
	resp, err := h.service.GetDefaultSeller(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a seller profile
// @Description Update a seller profile; setting is_default demotes the others
// @Tags Sellers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seller ID"
// @Param seller body dto.UpdateSellerRequest true "Seller"
// @Success 200 {object} dto.SellerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sellers/{id} [put]
func (h *SellerHandler) UpdateSeller(c *gin.Context) {
	var req dto.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSeller(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a seller profile
// @Description Delete a seller profile
// @Tags Sellers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seller ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sellers/{id} [delete]
func (h *SellerHandler) DeleteSeller(c *gin.Context) {
	if err := h.service.DeleteSeller(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
