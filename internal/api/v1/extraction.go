package v1

import (
	"net/http"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/service"
	"github.com/gin-gonic/gin"
)

type ExtractionHandler struct {
	service service.ExtractionService
	log     *logger.Logger
}

func NewExtractionHandler(service service.ExtractionService, log *logger.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Fill invoice fields from text
// @Description Extract invoice field candidates from free text, matched against stored customers and products
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FillInvoiceRequest true "Text"
// @Success 200 {object} dto.FillInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /ai/fill-invoice [post]
func (h *ExtractionHandler) FillInvoice(c *gin.Context) {
	var req dto.FillInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.FillInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Read an invoice from OCR text
// @Description Extract the structure of an existing invoice from its OCR text
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReadInvoiceRequest true "OCR text"
// @Success 200 {object} dto.ReadInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /ai/read-invoice [post]
func (h *ExtractionHandler) ReadInvoice(c *gin.Context) {
	var req dto.ReadInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ReadInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
