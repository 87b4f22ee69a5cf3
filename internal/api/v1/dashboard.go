package v1

import (
	"net/http"

	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

// @Summary Dashboard stats
// @Description Get the owner's invoice activity summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
